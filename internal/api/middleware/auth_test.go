package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

const testSecret = "test-secret"

type stubSessionReader struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionReader) Find(_ context.Context, id string) (*domain.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, authHeader string, sessions map[string]*domain.Session) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/pos/cart", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(testSecret, &stubSessionReader{sessions: sessions})
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, c, called
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _, called := runAuth(t, "", nil)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	rec, _, called := runAuth(t, "Token abc", nil)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ValidToken_InjectsSession(t *testing.T) {
	session := &domain.Session{
		ID:     "SES-42",
		UserID: "u1",
		Role:   domain.RoleCashier,
	}
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"sid": "SES-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, c, called := runAuth(t, "Bearer "+token, map[string]*domain.Session{"SES-42": session})
	if !called {
		t.Fatalf("next handler not called, status %d", rec.Code)
	}
	got, _ := c.Get("session").(*domain.Session)
	if got == nil || got.ID != "SES-42" {
		t.Fatalf("session not injected: %+v", got)
	}
}

// A structurally valid token whose session was deleted (logout) is rejected.
func TestAuth_RevokedSession(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"sid": "SES-GONE",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token, map[string]*domain.Session{})
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MissingSessionClaim(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token, nil)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongSigningMethod(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "u1",
		"sid": "SES-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token, nil)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"sid": "SES-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, called := runAuth(t, "Bearer "+token, nil)
	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
