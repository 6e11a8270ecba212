package middleware

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/api/metrics"
	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// DashboardRedirect is where denied-but-authenticated clients are sent.
const DashboardRedirect = "/dashboard"

// LoginRedirect builds the login target with the attempted path preserved for
// post-login return.
func LoginRedirect(path string) string {
	return "/login?next=" + url.QueryEscape(path)
}

// Requirement declares the access rule for a route: an exact role, a set of
// acceptable roles, or a permission. When several kinds are set, the first
// set kind decides: role before roles before permission. Documented
// priority, not a simultaneous AND.
type Requirement struct {
	Role       domain.Role
	Roles      []domain.Role
	Permission domain.Permission
}

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionLogin
	DecisionDashboard
)

// Evaluate applies the requirement to a session (nil when unauthenticated).
func (r Requirement) Evaluate(s *domain.Session) Decision {
	if s == nil {
		return DecisionLogin
	}
	switch {
	case r.Role != "":
		if !s.HasRole(r.Role) {
			return DecisionDashboard
		}
	case len(r.Roles) > 0:
		if !s.HasAnyRole(r.Roles...) {
			return DecisionDashboard
		}
	case r.Permission != "":
		if !s.HasPermission(r.Permission) {
			return DecisionDashboard
		}
	}
	return DecisionAllow
}

// kind names the requirement kind that decides, for the denial metric label.
func (r Requirement) kind() string {
	switch {
	case r.Role != "":
		return "role"
	case len(r.Roles) > 0:
		return "roles"
	case r.Permission != "":
		return "permission"
	default:
		return "session"
	}
}

// unmet renders the deciding requirement for the denial log.
func (r Requirement) unmet() string {
	switch {
	case r.Role != "":
		return fmt.Sprintf("role=%s", r.Role)
	case len(r.Roles) > 0:
		return fmt.Sprintf("roles=%v", r.Roles)
	case r.Permission != "":
		return fmt.Sprintf("permission=%s", r.Permission)
	default:
		return "authenticated"
	}
}

// Guard enforces a Requirement on a route. Denied attempts are logged with
// the identity, attempted path, and unmet requirement; the HTTP denial itself
// is the enforcement; the redirect hints only steer well-behaved clients.
func Guard(req Requirement, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get("session").(*domain.Session)

			switch req.Evaluate(session) {
			case DecisionLogin:
				metrics.AccessDeniedTotal.WithLabelValues("session").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": LoginRedirect(c.Request().URL.Path),
				})

			case DecisionDashboard:
				log.Warn().
					Str("email", session.Email).
					Str("role", string(session.Role)).
					Str("path", c.Request().URL.Path).
					Str("requirement", req.unmet()).
					Msg("access denied")
				metrics.AccessDeniedTotal.WithLabelValues(req.kind()).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "forbidden",
					"redirect": DashboardRedirect,
				})
			}

			return next(c)
		}
	}
}
