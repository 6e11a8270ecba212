package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// SessionStore holds server-side session records keyed by session ID.
// Deleting a record revokes the matching token immediately.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// CartStore persists the active cart snapshot per user so a cashier's
// in-progress sale survives reloads and instance restarts.
type CartStore interface {
	// Load returns the stored cart, or (nil, nil) when the user has none.
	Load(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, userID string, cart *domain.Cart) error
}
