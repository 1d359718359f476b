package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/config"
)

var (
	defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// exposed so the dashboard can read replay markers, limits and export file names
	corsExposeHeaders = []string{
		"Content-Disposition",
		"Content-Length",
		"Retry-After",
		"X-Request-ID",
		IdempotencyReplayedHeader,
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
	}
)

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}

// CORSMiddleware builds the gin-contrib CORS handler for the dashboard origins.
// Idempotency-Key is always allowed since sale recording depends on it.
// A "*" origin turns credentials off, as browsers reject that combination.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	headers := orDefault(cfg.AllowedHeaders, defaultCORSHeaders)
	if !slices.Contains(headers, IdempotencyKeyHeader) {
		headers = append(headers, IdempotencyKeyHeader)
	}

	corsConfig := cors.Config{
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultCORSMethods),
		AllowHeaders:     headers,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := orDefault(cfg.AllowedOrigins, defaultCORSOrigins)
	if slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}
