package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// CartView is the cart state returned after any cart operation. Warning is
// set for recovered conditions (e.g. a clamped quantity) that the client
// should surface without treating the operation as failed.
type CartView struct {
	Cart    *domain.Cart
	Total   float64
	Warning string
}

// CheckoutInput carries everything needed to submit the caller's cart as a sale.
type CheckoutInput struct {
	UserID          string
	ShopID          string
	PaymentMethodID string
	IdempotencyKey  string
}

// CheckoutResult is returned after a committed (or replayed) sale.
type CheckoutResult struct {
	Sale *domain.Sale
	// Stocks is the refreshed stock snapshot for the shop; the previous
	// snapshot is stale after a committed sale.
	Stocks []*domain.StockEntry
	// AlreadyExisted is true when the Idempotency-Key matched an existing sale.
	AlreadyExisted bool
}

// PosService defines the point-of-sale use cases: cart mutations against
// fetched stock levels and checkout submission.
type PosService interface {
	Cart(ctx context.Context, userID, shopID string) (*CartView, error)
	AddItem(ctx context.Context, userID, shopID, stockID string) (*CartView, error)
	SetQuantity(ctx context.Context, userID, shopID, stockID string, qty int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, shopID, stockID string) (*CartView, error)
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	// ListStocks returns the shop's sellable stock entries, optionally
	// filtered by a case-insensitive product name search.
	ListStocks(ctx context.Context, shopID, search string) ([]*domain.StockEntry, error)
}
