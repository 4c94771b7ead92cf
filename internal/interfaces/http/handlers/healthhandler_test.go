package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenantgate/tenantgate/internal/interfaces/http/handlers/testutil"
	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{}, logger.NewNop()).HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{err: assert.AnError}, logger.NewNop()).HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
