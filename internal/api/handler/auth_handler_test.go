package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

type stubAuthService struct {
	registered *ports.RegisterInput
	loggedOut  string
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "taken@example.com" {
		return nil, domain.ErrUserExists
	}
	s.registered = &in
	return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.Role(in.Role)}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if password != "pass1234" {
		return "", nil, domain.ErrInvalidCredentials
	}
	return "token-123", &domain.User{ID: "u1", Email: email, Role: domain.RoleCashier}, nil
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = sessionID
	return nil
}

func (s *stubAuthService) Profile(_ context.Context, userID string) (*domain.User, error) {
	if userID != "u1" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: "u1", Email: "cashier@example.com", Role: domain.RoleCashier}, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"pass1234","role":"CASHIER","shop_id":"shop_1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered == nil || svc.registered.ShopID != "shop_1" {
		t.Fatalf("service not called with shop binding: %+v", svc.registered)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Jane","email":"not-an-email","password":"short","role":"CASHIER"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Jane","email":"taken@example.com","password":"pass1234","role":"CASHIER"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passthrough, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"jane@example.com","password":"pass1234"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Token != "token-123" || body.User == nil {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestAuthHandler_Login_BadPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"jane@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_Logout_DeletesSession(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Set("session", &domain.Session{ID: "SES-9", UserID: "u1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loggedOut != "SES-9" {
		t.Fatalf("expected session SES-9 deleted, got %q", svc.loggedOut)
	}
}

func TestAuthHandler_Me_RequiresSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/users/me", "")
	err := h.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
