package integration

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/markethub/admin-backend/internal/config"
	"github.com/markethub/admin-backend/internal/server"
)

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	t.Run("health", func(t *testing.T) {
		w := f.do(t, nil, http.MethodGet, "/health", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["status"] != "ok" {
			t.Fatalf("expected status ok, got %q", body["status"])
		}
	})

	t.Run("ready", func(t *testing.T) {
		w := f.do(t, nil, http.MethodGet, "/ready", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("meta", func(t *testing.T) {
		w := f.do(t, nil, http.MethodGet, "/v1/meta", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		w := f.do(t, nil, http.MethodGet, "/v1/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestReadyReportsDatabaseOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := server.NewRouter(config.Config{Env: "test"}, slog.Default(), server.Dependencies{
		Pinger: fakePinger{err: errors.New("connection refused")},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
