package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markethub/admin-backend/internal/auth"
)

func TestAuthLifecycle(t *testing.T) {
	f := newFixture(t)

	var accessCookie, refreshCookie *http.Cookie

	t.Run("login sets both cookies", func(t *testing.T) {
		body := `{"email":"admin@markethub.test","password":"` + testPassword + `"}`
		w := f.do(t, nil, http.MethodPost, "/v1/auth/login", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		for _, c := range w.Result().Cookies() {
			switch c.Name {
			case auth.AccessCookieName:
				accessCookie = c
			case auth.RefreshCookieName:
				refreshCookie = c
			}
		}
		if accessCookie == nil || refreshCookie == nil {
			t.Fatal("expected access and refresh cookies")
		}
		if !accessCookie.HttpOnly || !refreshCookie.HttpOnly {
			t.Fatal("auth cookies must be HttpOnly")
		}

		var body2 struct {
			Success bool `json:"success"`
			Data    struct {
				User struct {
					Email    string `json:"email"`
					Role     string `json:"role"`
					TenantID string `json:"tenant_id"`
				} `json:"user"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body2); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !body2.Success || body2.Data.User.Role != "admin" || body2.Data.User.TenantID != testTenant {
			t.Fatalf("unexpected login payload: %s", w.Body.String())
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		body := `{"email":"admin@markethub.test","password":"nope"}`
		w := f.do(t, nil, http.MethodPost, "/v1/auth/login", body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("me returns the session user", func(t *testing.T) {
		w := f.do(t, accessCookie, http.MethodGet, "/v1/auth/me", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "admin@markethub.test") {
			t.Fatalf("expected user email in payload: %s", w.Body.String())
		}
	})

	t.Run("refresh rotates the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
		req.AddCookie(refreshCookie)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var rotated *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == auth.RefreshCookieName {
				rotated = c
			}
		}
		if rotated == nil || rotated.Value == refreshCookie.Value {
			t.Fatal("expected a new refresh token")
		}

		// The old refresh token is revoked with its session.
		replay := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
		replay.AddCookie(refreshCookie)
		w2 := httptest.NewRecorder()
		f.router.ServeHTTP(w2, replay)
		if w2.Code != http.StatusUnauthorized {
			t.Fatalf("expected replayed refresh rejected, got %d", w2.Code)
		}

		refreshCookie = rotated
	})

	t.Run("logout clears cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
		req.AddCookie(refreshCookie)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		for _, c := range w.Result().Cookies() {
			if c.Name == auth.RefreshCookieName && c.MaxAge >= 0 {
				t.Fatal("expected refresh cookie cleared")
			}
		}

		replay := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
		replay.AddCookie(refreshCookie)
		w2 := httptest.NewRecorder()
		f.router.ServeHTTP(w2, replay)
		if w2.Code != http.StatusUnauthorized {
			t.Fatalf("expected refresh after logout rejected, got %d", w2.Code)
		}
	})

	t.Run("protected routes need a session", func(t *testing.T) {
		w := f.do(t, nil, http.MethodGet, "/v1/vendors", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
