package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"credforge/internal/platform/config"
	"credforge/internal/platform/health"
	"credforge/pkg/platform/httputil"
)

func testApp() *App {
	cfg := config.Service{
		Addr:            ":0",
		WorkerID:        "worker-test",
		MaxBodyBytes:    1024,
		ShutdownTimeout: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(cfg, logger, health.New("worker-test"), nil, func(r chi.Router) {
		r.Post("/issue", func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
		})
	})
}

func TestRouterAssembly(t *testing.T) {
	a := testApp()

	t.Run("health endpoint mounted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "worker-test")
	})

	t.Run("metrics endpoint mounted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("service routes registered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/issue", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		a.srv.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("request id header set", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("wrong content type rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/issue", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		a.srv.Handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}
