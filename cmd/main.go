package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"vcs-dashboard/internal/api"
	"vcs-dashboard/internal/config"
	"vcs-dashboard/internal/db"
	"vcs-dashboard/internal/engine"
	"vcs-dashboard/internal/logger"
	"vcs-dashboard/internal/models"
	"vcs-dashboard/internal/parser"
	"vcs-dashboard/internal/session"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	database *db.Database
	cfg      *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vcs-dashboard",
		Short: "VCS Dashboard - vehicle classification and tracking backend",
		Long: `Backend for the vehicle classification surveillance dashboard.
Serves deterministic synthetic classification data (trend series, category
distribution, summary KPIs) and per-vehicle GPS sighting history over REST,
with a matching CLI for local queries and data generation.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Directory containing config.yaml")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(camerasCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(ingestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initApp loads configuration and opens the tracking database
func initApp() error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	database, err = db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

// serveCmd starts the REST API server
func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(); err != nil {
				return err
			}
			defer database.Close()

			if port != 0 {
				cfg.Server.Port = port
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Env)
			sessions := session.NewStore(cfg.Session.TTL)
			server := api.NewServer(database, sessions, cfg, log)

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.WithField("addr", addr).Info("vcs-dashboard API listening")
			log.WithField("database", cfg.Database.Path).Info("tracking store ready")

			handler := handlers.CORS(
				handlers.AllowedOrigins([]string{"*"}),
				handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
				handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
			)(server.Router())

			return http.ListenAndServe(addr, handlers.RecoveryHandler()(handler))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Server port (overrides config)")
	return cmd
}

// dashboardCmd runs one engine query and prints the bundle
func dashboardCmd() *cobra.Command {
	var from, to, camera, grouping string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run a classification dashboard query and print the bundle as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle := engine.BuildDashboard(models.FilterSpec{
				DateFrom:     from,
				DateTo:       to,
				CameraID:     camera,
				TimeGrouping: models.Grouping(grouping),
			})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(bundle)
		},
	}

	today := time.Now().Format("2006-01-02")
	cmd.Flags().StringVar(&from, "from", today, "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", today, "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&camera, "camera", "all", "Camera ID")
	cmd.Flags().StringVar(&grouping, "grouping", "hourly", "Time grouping (hourly, daily)")
	return cmd
}

// camerasCmd prints the camera reference table
func camerasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cameras",
		Short: "List known cameras",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-10s %s\n", "ID", "Name")
			for _, cam := range engine.Cameras() {
				fmt.Printf("%-10s %s\n", cam.ID, cam.Name)
			}
			return nil
		},
	}
}

// generateCmd populates the tracking store with deterministic synthetic sightings
func generateCmd() *cobra.Command {
	var vehicleCount int
	var perVehicle int
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic vehicle sightings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(); err != nil {
				return err
			}
			defer database.Close()

			vehicleTypes := []string{"Car", "Auto", "Bike", "Bus", "Truck"}
			cameras := engine.Cameras()
			baseTime := time.Now().Add(-24 * time.Hour).Unix()

			total := int64(0)
			for i := 1; i <= vehicleCount; i++ {
				// One sequence per vehicle keeps runs reproducible for a
				// given seed regardless of vehicle count.
				seq := engine.NewSequence(seed + int64(i))

				v := models.TrackedVehicle{
					ID:           fmt.Sprintf("VEH-%03d", i),
					Name:         fmt.Sprintf("Vehicle %d", i),
					LicensePlate: fmt.Sprintf("TS-%04d", 1000+i),
					VehicleType:  vehicleTypes[(i-1)%len(vehicleTypes)],
				}
				if err := database.InsertVehicle(&v); err != nil {
					return fmt.Errorf("inserting %s: %w", v.ID, err)
				}

				// Random walk around the surveillance zone.
				lat := 17.3850 + (seq.Next()-0.5)*0.1
				lng := 78.4867 + (seq.Next()-0.5)*0.1

				var batch []models.Sighting
				for j := 0; j < perVehicle; j++ {
					lat += (seq.Next() - 0.5) * 0.002
					lng += (seq.Next() - 0.5) * 0.002
					batch = append(batch, models.Sighting{
						VehicleID: v.ID,
						Timestamp: baseTime + int64(j)*300,
						Latitude:  lat,
						Longitude: lng,
						SpeedKMH:  seq.Next() * 80,
						Heading:   seq.Next() * 360,
						CameraID:  cameras[1+int(seq.Next()*float64(len(cameras)-1))].ID,
					})
				}

				count, err := database.InsertSightingBatch(batch)
				if err != nil {
					return fmt.Errorf("inserting sightings for %s: %w", v.ID, err)
				}
				total += count
			}

			fmt.Printf("Created %d vehicles with %d sightings\n", vehicleCount, total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&vehicleCount, "vehicles", "n", 10, "Number of vehicles to create")
	cmd.Flags().IntVarP(&perVehicle, "count", "c", 288, "Sightings per vehicle")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Generation seed")
	return cmd
}

// ingestCmd loads sighting records from files
func ingestCmd() *cobra.Command {
	var format string
	var validate bool

	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Ingest sighting records from files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(); err != nil {
				return err
			}
			defer database.Close()

			p := parser.NewParser(format)
			totalRecords := int64(0)
			totalErrors := 0

			for _, file := range args {
				fmt.Printf("Processing %s...\n", file)
				start := time.Now()

				records, err := p.ParseFile(file)
				if err != nil {
					fmt.Printf("  Error: %v\n", err)
					totalErrors++
					continue
				}

				if validate {
					var valid []models.Sighting
					for _, r := range records {
						if errs := parser.ValidateSighting(&r); len(errs) == 0 {
							valid = append(valid, r)
						} else {
							totalErrors++
						}
					}
					records = valid
				}

				count, err := database.InsertSightingBatch(records)
				if err != nil {
					fmt.Printf("  Database error: %v\n", err)
					continue
				}

				elapsed := time.Since(start)
				fmt.Printf("  Inserted %d records in %v\n", count, elapsed)
				totalRecords += count
			}

			fmt.Printf("\nTotal: %d records ingested", totalRecords)
			if totalErrors > 0 {
				fmt.Printf(", %d errors", totalErrors)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "File format (csv, json, log)")
	cmd.Flags().BoolVarP(&validate, "validate", "v", true, "Validate records before inserting")
	return cmd
}
