// Package auth issues and validates the JWTs behind the pass-through login
// gate. There is no credential store: any non-empty username/password pair is
// accepted by the caller, and the token only carries identity for the session
// cache.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken creates an HS256 session token for a username.
func GenerateToken(username, sessionID, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": username,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken validates a token and returns its claims.
func ValidateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// SessionID extracts the session id claim, if present.
func SessionID(claims jwt.MapClaims) string {
	if sid, ok := claims["sid"].(string); ok {
		return sid
	}
	return ""
}
