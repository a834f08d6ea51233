package bootstrap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/metrics"
	"go-leave/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	r := bootstrap.NewRouter(cfg, metrics.NewRegistry(), zap.NewNop())

	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "leave_http_requests_total")
	})
}

func TestNewRouter_WithoutMetrics(t *testing.T) {
	r := bootstrap.NewRouter(&config.Config{}, nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	server := bootstrap.NewHTTPServer(http.NotFoundHandler(), config.ServerConfig{Port: 0})
	server.Addr = "127.0.0.1:0"
	audit := &recordingAudit{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, bootstrap.Serve(ctx, server, audit))
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
}
