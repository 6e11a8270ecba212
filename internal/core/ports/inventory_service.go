package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// CreateShopInput carries the data for a new shop.
type CreateShopInput struct {
	Name     string
	Location string
	OwnerID  string
}

// UpdateShopInput carries the mutable shop fields.
type UpdateShopInput struct {
	Name     string
	Location string
}

// ShopService defines shop management use cases.
type ShopService interface {
	CreateShop(ctx context.Context, in CreateShopInput) (*domain.Shop, error)
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	// ListShops scopes to the owner unless ownerID is empty (super admin).
	ListShops(ctx context.Context, ownerID string) ([]*domain.Shop, error)
	UpdateShop(ctx context.Context, id string, in UpdateShopInput) (*domain.Shop, error)
	DeleteShop(ctx context.Context, id string) error
}

// AddStockInput carries the data for a new stock entry.
type AddStockInput struct {
	ShopID       string
	ProductID    string
	ProductName  string
	SellingPrice float64
	Quantity     int
}

// UpdateStockInput carries the mutable stock fields.
type UpdateStockInput struct {
	SellingPrice float64
	Quantity     int
}

// StockService defines stock intake and adjustment use cases.
type StockService interface {
	AddStock(ctx context.Context, in AddStockInput) (*domain.StockEntry, error)
	UpdateStock(ctx context.Context, id string, in UpdateStockInput) (*domain.StockEntry, error)
}
