package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening middleware applied to every route.
type SecurityConfig struct {
	// EnableCORS toggles CORS headers on responses.
	EnableCORS bool
	// AllowedOrigins lists origins for Access-Control-Allow-Origin.
	AllowedOrigins []string
	// AllowedMethods lists methods for Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxCount caps the count accepted by the sequence endpoint.
	MaxCount int
}

// DefaultSecurityConfig returns the default hardening configuration:
// permissive CORS for the read-only API and a generation cap that keeps a
// single request from tying up the process.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxCount:       100_000,
	}
}

// SecurityMiddleware applies standard security headers and, when enabled,
// CORS headers. OPTIONS preflight requests are answered directly.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			h.Set("Access-Control-Allow-Origin", strings.Join(config.AllowedOrigins, ", "))
			h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
