package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// ShopRepository defines persistence operations for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
	// List returns shops for the given owner. An empty ownerID returns all
	// shops (super admin view).
	List(ctx context.Context, ownerID string) ([]*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id string) error
}
