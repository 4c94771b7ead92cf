package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/tenantgate/tenantgate/internal/shared/authorization"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func newTestRateLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(client, limit, time.Minute, logger.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }
	return rl, mr
}

func TestRateLimiter_PerTenant(t *testing.T) {
	rl, _ := newTestRateLimiter(t, 2)

	tenantA := authorization.Actor{UserID: "a", TenantID: 1, Role: authorization.RoleUser}
	tenantB := authorization.Actor{UserID: "b", TenantID: 2, Role: authorization.RoleUser}

	r := gin.New()
	r.GET("/a", withActor(&tenantA), rl.Limit(), okHandler)
	r.GET("/b", withActor(&tenantB), rl.Limit(), okHandler)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/a", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/a", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/a", nil)).Code)

	// another tenant has its own window
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/b", nil)).Code)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl, mr := newTestRateLimiter(t, 1)

	r := gin.New()
	r.GET("/ping", rl.Limit(), okHandler)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl, mr := newTestRateLimiter(t, 1)
	mr.Close()

	r := gin.New()
	r.GET("/ping", rl.Limit(), okHandler)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	}
}

func TestRateLimiter_NilIsNoop(t *testing.T) {
	var rl *RateLimiter
	r := gin.New()
	r.GET("/ping", rl.Limit(), okHandler)

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}
