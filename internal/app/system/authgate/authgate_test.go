package authgate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/regionpress/accounthub/internal/app/system/authgate"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "user_123",
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingToken(t *testing.T) {
	gate := authgate.New(testSecret, zap.NewNop())

	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	gate.RequireAuth(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	gate := authgate.New(testSecret, zap.NewNop())

	var got authgate.Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = authgate.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "reader", time.Hour))
	rec := httptest.NewRecorder()
	gate.RequireAuth(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got.Subject != "user_123" {
		t.Errorf("subject: got %q, want %q", got.Subject, "user_123")
	}
	if got.Role != "reader" {
		t.Errorf("role: got %q, want %q", got.Role, "reader")
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	gate := authgate.New(testSecret, zap.NewNop())

	req := httptest.NewRequest("GET", "/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "reader", -time.Minute))
	rec := httptest.NewRecorder()
	gate.RequireAuth(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	gate := authgate.New("a-different-secret", zap.NewNop())

	req := httptest.NewRequest("GET", "/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "reader", time.Hour))
	rec := httptest.NewRecorder()
	gate.RequireAuth(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole_Admin(t *testing.T) {
	gate := authgate.New(testSecret, zap.NewNop())
	mw := gate.RequireRole("admin")

	req := httptest.NewRequest("POST", "/promote", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Hour))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole_NonAdminForbidden(t *testing.T) {
	gate := authgate.New(testSecret, zap.NewNop())
	mw := gate.RequireRole("admin")

	req := httptest.NewRequest("POST", "/promote", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "reporter", time.Hour))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}
