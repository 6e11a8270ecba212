package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// SessionReader loads server-side sessions; satisfied by the Redis store.
type SessionReader interface {
	Find(ctx context.Context, id string) (*domain.Session, error)
}

// Auth validates the JWT, loads the server-side session it references, and
// injects the session into the request context. A structurally valid token
// whose session has been deleted (logout) is rejected, so revocation takes
// effect before the token expires.
func Auth(jwtSecret string, sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthenticated(c, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return unauthenticated(c, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return unauthenticated(c, "token missing session identity")
			}

			session, err := sessions.Find(c.Request().Context(), sid)
			if err != nil {
				return unauthenticated(c, "session expired")
			}

			c.Set("session", session)
			return next(c)
		}
	}
}

// unauthenticated denies the request with the login redirect hint, preserving
// the attempted path for post-login return.
func unauthenticated(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":    msg,
		"redirect": LoginRedirect(c.Request().URL.Path),
	})
}
