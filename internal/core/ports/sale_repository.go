package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// SaleRepository defines persistence operations for committed sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	// FindByIdempotencyKey retrieves a sale previously created with the given
	// key, for idempotent replay of a retried checkout.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error)
}

// MovementRepository persists the stock movement audit trail.
type MovementRepository interface {
	Insert(ctx context.Context, m *domain.StockMovement) error
}
