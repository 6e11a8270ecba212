package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

func cashierSession() *domain.Session {
	return &domain.Session{
		ID:          "SES-1",
		UserID:      "u1",
		Email:       "cashier@example.com",
		Role:        domain.RoleCashier,
		Permissions: domain.RoleCashier.Permissions(),
		ShopID:      "shop_1",
	}
}

func TestRequirement_Evaluate_NilSession(t *testing.T) {
	req := Requirement{Permission: domain.PermViewReports}
	if d := req.Evaluate(nil); d != DecisionLogin {
		t.Fatalf("expected DecisionLogin, got %v", d)
	}
}

func TestRequirement_Evaluate_RoleMismatch(t *testing.T) {
	req := Requirement{Role: domain.RoleSuperAdmin}
	if d := req.Evaluate(cashierSession()); d != DecisionDashboard {
		t.Fatalf("expected DecisionDashboard, got %v", d)
	}
}

func TestRequirement_Evaluate_RolesSet(t *testing.T) {
	req := Requirement{Roles: []domain.Role{domain.RoleBusinessOwner, domain.RoleShopManager}}
	if d := req.Evaluate(cashierSession()); d != DecisionDashboard {
		t.Fatalf("expected DecisionDashboard, got %v", d)
	}

	req = Requirement{Roles: []domain.Role{domain.RoleCashier, domain.RoleShopManager}}
	if d := req.Evaluate(cashierSession()); d != DecisionAllow {
		t.Fatalf("expected DecisionAllow, got %v", d)
	}
}

func TestRequirement_Evaluate_Permission(t *testing.T) {
	req := Requirement{Permission: domain.PermProcessSales}
	if d := req.Evaluate(cashierSession()); d != DecisionAllow {
		t.Fatalf("expected DecisionAllow, got %v", d)
	}

	req = Requirement{Permission: domain.PermViewReports}
	if d := req.Evaluate(cashierSession()); d != DecisionDashboard {
		t.Fatalf("expected DecisionDashboard, got %v", d)
	}
}

// Role beats roles beats permission: the first set kind decides, so a session
// that satisfies the permission but not the role is still denied.
func TestRequirement_Evaluate_Priority(t *testing.T) {
	req := Requirement{Role: domain.RoleSuperAdmin, Permission: domain.PermProcessSales}
	if d := req.Evaluate(cashierSession()); d != DecisionDashboard {
		t.Fatalf("expected role check to decide, got %v", d)
	}
}

func TestGuard_NoSession_RedirectsToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Guard(Requirement{Permission: domain.PermViewReports}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !strings.HasPrefix(body["redirect"], "/login?next=") || !strings.Contains(body["redirect"], "%2Freports") {
		t.Fatalf("expected login redirect preserving path, got %q", body["redirect"])
	}
}

func TestGuard_WrongRole_RedirectsToDashboard(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/plans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", cashierSession())

	mw := Guard(Requirement{Role: domain.RoleSuperAdmin}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["redirect"] != DashboardRedirect {
		t.Fatalf("expected dashboard redirect, got %q", body["redirect"])
	}
}

func TestGuard_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/pos/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", cashierSession())

	called := false
	mw := Guard(Requirement{Permission: domain.PermProcessSales}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
