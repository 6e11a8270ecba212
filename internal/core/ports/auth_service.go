package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// RegisterInput carries the data needed to create a new user account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	ShopID   string
}

// AuthService implements registration, login, and session teardown.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the credentials, creates a server-side session, and
	// returns a signed token referencing it.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout deletes the session, revoking the token.
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
