package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/config"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKeys struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryKeys() *memoryKeys {
	return &memoryKeys{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memoryKeys) GetByKey(_ context.Context, key string, userID uuid.UUID, now time.Time) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.keys[userID.String()+key]
	if !ok || !k.ExpiresAt.After(now) {
		return nil, nil
	}
	return k, nil
}

func (m *memoryKeys) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.UserID.String()+ikey.Key] = ikey
	return nil
}

func (m *memoryKeys) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBearerToken(t *testing.T) {
	token, _ := bearerToken("Bearer abc.def")
	assert.Equal(t, "abc.def", token)
	token, _ = bearerToken("bearer abc")
	assert.Equal(t, "abc", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b", "Bearer "} {
		token, msg := bearerToken(header)
		assert.Empty(t, token, header)
		assert.NotEmpty(t, msg, header)
	}
}

func authedRouter(t *testing.T, permissions []string) (*gin.Engine, string) {
	t.Helper()
	jwt := utils.NewJWTManager("secret", "identity", time.Hour)
	token, err := jwt.GenerateAccessToken(uuid.New(), "clerk@example.com", nil, permissions)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(jwt))
	return router, token
}

func send(router *gin.Engine, method, path, token, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequirePermissionAcceptsAnyListed(t *testing.T) {
	router, token := authedRouter(t, []string{"products.manage"})
	router.GET("/either", RequirePermission("products.view", "products.manage"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/other", RequirePermission("sales.manage"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, send(router, "GET", "/either", token, "").Code)
	assert.Equal(t, http.StatusForbidden, send(router, "GET", "/other", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, send(router, "GET", "/either", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, send(router, "GET", "/either", "not-a-jwt", "").Code)
}

func TestIdempotencyRequiredReplaysSuccess(t *testing.T) {
	router, token := authedRouter(t, nil)
	cfg := IdempotencyConfig{Repo: newMemoryKeys()}

	calls := 0
	router.POST("/sales", IdempotencyRequired(cfg), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	router.POST("/other", IdempotencyRequired(cfg), func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, http.StatusBadRequest, send(router, "POST", "/sales", token, "").Code)

	first := send(router, "POST", "/sales", token, "k-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := send(router, "POST", "/sales", token, "k-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	assert.Equal(t, http.StatusConflict, send(router, "POST", "/other", token, "k-1").Code)
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	router, token := authedRouter(t, nil)
	cfg := IdempotencyConfig{Repo: newMemoryKeys()}

	calls := 0
	router.POST("/submit", Idempotency(cfg), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusUnprocessableEntity, send(router, "POST", "/submit", token, "k").Code)
	assert.Equal(t, http.StatusCreated, send(router, "POST", "/submit", token, "k").Code)
	assert.Equal(t, http.StatusCreated, send(router, "POST", "/submit", token, "").Code)
	assert.Equal(t, 3, calls)
}

func TestIdempotencyKeysExpire(t *testing.T) {
	router, token := authedRouter(t, nil)
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	cfg := IdempotencyConfig{Repo: newMemoryKeys(), Now: func() time.Time { return now }}

	calls := 0
	router.POST("/sales", IdempotencyRequired(cfg), func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	send(router, "POST", "/sales", token, "k")
	send(router, "POST", "/sales", token, "k")
	assert.Equal(t, 1, calls)

	now = now.Add(IdempotencyKeyTTL + time.Minute)
	send(router, "POST", "/sales", token, "k")
	assert.Equal(t, 2, calls)
}

func TestCORSExposesSaleHeaders(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://dash.local"}}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://dash.local")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://dash.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://dash.local")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), IdempotencyReplayedHeader)
}
