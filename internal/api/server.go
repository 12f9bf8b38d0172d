// Package api exposes the classification dashboard and vehicle tracking over
// REST.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vcs-dashboard/internal/auth"
	"vcs-dashboard/internal/config"
	"vcs-dashboard/internal/db"
	"vcs-dashboard/internal/engine"
	"vcs-dashboard/internal/models"
	"vcs-dashboard/internal/session"
	"vcs-dashboard/internal/track"
)

// Server represents the API server
type Server struct {
	db       *db.Database
	sessions *session.Store
	cfg      *config.Config
	log      *logrus.Logger
	router   *mux.Router
}

// NewServer creates a new API server
func NewServer(database *db.Database, sessions *session.Store, cfg *config.Config, log *logrus.Logger) *Server {
	s := &Server{
		db:       database,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Login gate
	s.router.HandleFunc("/api/v1/auth/login", s.handleLogin).Methods("POST")

	// Classification dashboard
	vcs := s.router.PathPrefix("/api/v1/vcs").Subrouter()
	vcs.Use(s.authMiddleware)
	vcs.HandleFunc("/dashboard", s.handleDashboard).Methods("GET")
	vcs.HandleFunc("/cameras", s.handleCameras).Methods("GET")

	// Vehicle tracking
	vehicles := s.router.PathPrefix("/api/v1/vehicles").Subrouter()
	vehicles.Use(s.authMiddleware)
	vehicles.HandleFunc("", s.handleListVehicles).Methods("GET")
	vehicles.HandleFunc("/{id}/history", s.handleVehicleHistory).Methods("GET")
	vehicles.HandleFunc("/{id}/latest", s.handleVehicleLatest).Methods("GET")

	// Stats endpoint
	stats := s.router.PathPrefix("/api/v1/stats").Subrouter()
	stats.Use(s.authMiddleware)
	stats.HandleFunc("", s.handleStats).Methods("GET")

	// Add middleware
	s.router.Use(s.loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// authMiddleware requires a valid bearer token and stashes the session id in
// a request header for the handlers.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.ValidateToken(tokenString, s.cfg.Auth.Secret)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		r.Header.Set("X-Session-ID", auth.SessionID(claims))
		next.ServeHTTP(w, r)
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *meta       `json:"meta,omitempty"`
}

type meta struct {
	Total   int   `json:"total,omitempty"`
	QueryMs int64 `json:"query_ms,omitempty"`
	Cached  bool  `json:"cached,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func respondWithMeta(w http.ResponseWriter, data interface{}, m *meta) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data, Meta: m})
}

// Handlers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// handleLogin is a pass-through gate: any non-empty credentials are accepted
// and no user record is stored.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	sessionID := uuid.NewString()
	token, err := auth.GenerateToken(req.Username, sessionID, s.cfg.Auth.Secret, s.cfg.Auth.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token, SessionID: sessionID})
}

// handleDashboard runs the classification engine for the requested filters.
// Bad filters degrade inside the engine, so this always answers 200.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	spec := engine.Sanitize(models.FilterSpec{
		DateFrom:     r.URL.Query().Get("date_from"),
		DateTo:       r.URL.Query().Get("date_to"),
		CameraID:     r.URL.Query().Get("camera_id"),
		TimeGrouping: models.Grouping(r.URL.Query().Get("time_grouping")),
	})

	sessionID := r.Header.Get("X-Session-ID")
	if bundle, ok := s.sessions.Get(sessionID, spec); ok {
		respondWithMeta(w, bundle, &meta{Cached: true, QueryMs: time.Since(start).Milliseconds()})
		return
	}

	bundle := engine.BuildDashboard(spec)
	if sessionID != "" {
		s.sessions.Put(sessionID, spec, bundle)
	}

	respondWithMeta(w, bundle, &meta{QueryMs: time.Since(start).Milliseconds()})
}

func (s *Server) handleCameras(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, engine.Cameras())
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.db.ListVehicles()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (s *Server) handleVehicleHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	q := models.HistoryQuery{VehicleID: vars["id"]}
	if v := r.URL.Query().Get("from"); v != "" {
		q.From, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := r.URL.Query().Get("to"); v != "" {
		q.To, _ = strconv.ParseInt(v, 10, 64)
	}

	limit := track.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	records, err := s.db.QueryHistory(q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	normalized := track.NormalizeRecords(records, limit)
	respondWithMeta(w, normalized, &meta{
		Total:   len(normalized),
		QueryMs: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleVehicleLatest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sighting, err := s.db.GetLatestSighting(vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "no sightings found for vehicle")
		return
	}

	sighting.DisplayTime = track.FormatIST(sighting.Timestamp)
	respondJSON(w, http.StatusOK, sighting)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
