package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fiscalmanager/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// statsPinger is a healthy database that also reports its pool
type statsPinger struct {
	stats persistence.ConnectionStats
	err   error
}

func (statsPinger) Ping(context.Context) error { return nil }

func (p statsPinger) Stats() (persistence.ConnectionStats, error) { return p.stats, p.err }

func TestSystemHandler_Root(t *testing.T) {
	h := NewSystemHandler(pingFunc(func(context.Context) error { return nil }), "1.0.0")
	r := newTestRouter(false)
	r.GET("/", h.Root)

	w := perform(t, r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"FiscalManager Total API - v1.0"}`, w.Body.String())
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantDB     string
	}{
		{"database up", nil, http.StatusOK, "ok"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := NewSystemHandler(pingFunc(func(ctx context.Context) error {
				called = true
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.ping
			}), "1.0.0")
			r := newTestRouter(false)
			r.GET("/health", h.Health)

			w := perform(t, r, http.MethodGet, "/health", nil)

			assert.True(t, called)
			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantDB, resp.Database)
			assert.Equal(t, "1.0.0", resp.Version)
			assert.NotEmpty(t, resp.GoVersion)
		})
	}
}

func TestSystemHandler_HealthPool(t *testing.T) {
	t.Run("reports pool statistics", func(t *testing.T) {
		h := NewSystemHandler(statsPinger{stats: persistence.ConnectionStats{
			MaxOpenConnections: 25,
			OpenConnections:    3,
			InUse:              1,
			Idle:               2,
			WaitCount:          4,
			WaitDuration:       1500 * time.Millisecond,
		}}, "1.0.0")
		r := newTestRouter(false)
		r.GET("/health", h.Health)

		w := perform(t, r, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Pool)
		assert.Equal(t, PoolStats{
			MaxOpen:      25,
			Open:         3,
			InUse:        1,
			Idle:         2,
			WaitCount:    4,
			WaitDuration: "1.5s",
		}, *resp.Pool)
	})

	t.Run("stats error omits the pool", func(t *testing.T) {
		h := NewSystemHandler(statsPinger{err: errors.New("sql: database is closed")}, "1.0.0")
		r := newTestRouter(false)
		r.GET("/health", h.Health)

		w := perform(t, r, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"pool"`)
	})

	t.Run("plain pinger omits the pool", func(t *testing.T) {
		h := NewSystemHandler(pingFunc(func(context.Context) error { return nil }), "1.0.0")
		r := newTestRouter(false)
		r.GET("/health", h.Health)

		w := perform(t, r, http.MethodGet, "/health", nil)

		assert.NotContains(t, w.Body.String(), `"pool"`)
	})
}
