package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

func (c IdempotencyConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// bodyRecorder tees everything written to the client into a buffer
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func endpoint(c *gin.Context) string {
	return c.Request.Method + " " + c.FullPath()
}

// Idempotency replays stored responses for repeated Idempotency-Key headers.
// Requests without the header, or without a user, pass through untouched.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, false)
}

// IdempotencyRequired rejects POST requests that carry no Idempotency-Key
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, true)
}

func idempotency(config IdempotencyConfig, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		userID, authed := UserID(c)
		if !required && (key == "" || !authed) {
			c.Next()
			return
		}
		if key == "" {
			response.BadRequest(c, IdempotencyKeyHeader+" header is required for this request")
			c.Abort()
			return
		}
		if !authed {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID, config.now())
		if err != nil {
			if !required {
				c.Next()
				return
			}
			response.Error(c, apperror.Internal(err))
			c.Abort()
			return
		}

		if existing != nil {
			if existing.Endpoint != endpoint(c) {
				response.Conflict(c, IdempotencyKeyHeader+" was already used for a different request")
				c.Abort()
				return
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		store(c, config, key, userID)
	}
}

// store runs the rest of the chain and keeps its response under key.
// Only 2xx responses are kept so a rejected request can be retried.
func store(c *gin.Context, config IdempotencyConfig, key string, userID uuid.UUID) {
	rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
	c.Writer = rec

	c.Next()

	status := c.Writer.Status()
	if status < 200 || status >= 300 {
		return
	}

	ikey := &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     endpoint(c),
		ResponseCode: status,
		ResponseBody: rec.body.String(),
		ExpiresAt:    config.now().Add(IdempotencyKeyTTL),
	}
	if err := config.Repo.Create(c.Request.Context(), ikey); err != nil && config.Logger != nil {
		config.Logger.Warn("failed to store idempotency key",
			zap.String("endpoint", ikey.Endpoint),
			zap.Error(err),
		)
	}
}
