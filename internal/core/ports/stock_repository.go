package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// StockRepository defines persistence operations for stock entries.
type StockRepository interface {
	Create(ctx context.Context, entry *domain.StockEntry) (*domain.StockEntry, error)
	FindByID(ctx context.Context, id string) (*domain.StockEntry, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.StockEntry, error)
	// Update replaces the mutable fields (selling price, quantity).
	Update(ctx context.Context, entry *domain.StockEntry) error
	// Decrement subtracts n from the entry's quantity only when at least n
	// units remain, returning the remaining quantity. A failed condition
	// returns domain.ErrInsufficientStock.
	Decrement(ctx context.Context, stockID string, n int) (remaining int, err error)
	// Increment adds n units back; used to compensate a partially applied sale.
	Increment(ctx context.Context, stockID string, n int) error
}
