package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// InventoryService implements shop management and stock intake.
type InventoryService struct {
	shops  ports.ShopRepository
	stocks ports.StockRepository
	log    zerolog.Logger
}

func NewInventoryService(shops ports.ShopRepository, stocks ports.StockRepository, log zerolog.Logger) *InventoryService {
	return &InventoryService{shops: shops, stocks: stocks, log: log}
}

func (s *InventoryService) CreateShop(ctx context.Context, in ports.CreateShopInput) (*domain.Shop, error) {
	now := time.Now().UTC()
	shop := &domain.Shop{
		Name:      in.Name,
		Location:  in.Location,
		OwnerID:   in.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.shops.Create(ctx, shop)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("shop_id", created.ID).Str("name", created.Name).Msg("shop created")
	return created, nil
}

func (s *InventoryService) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return s.shops.FindByID(ctx, id)
}

func (s *InventoryService) ListShops(ctx context.Context, ownerID string) ([]*domain.Shop, error) {
	return s.shops.List(ctx, ownerID)
}

func (s *InventoryService) UpdateShop(ctx context.Context, id string, in ports.UpdateShopInput) (*domain.Shop, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Name = in.Name
	shop.Location = in.Location
	shop.UpdatedAt = time.Now().UTC()
	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *InventoryService) DeleteShop(ctx context.Context, id string) error {
	if _, err := s.shops.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.shops.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("shop_id", id).Msg("shop deleted")
	return nil
}

func (s *InventoryService) AddStock(ctx context.Context, in ports.AddStockInput) (*domain.StockEntry, error) {
	if _, err := s.shops.FindByID(ctx, in.ShopID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.StockEntry{
		ShopID:       in.ShopID,
		ProductID:    in.ProductID,
		ProductName:  in.ProductName,
		SellingPrice: in.SellingPrice,
		Quantity:     in.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.stocks.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("stock_id", created.ID).
		Str("shop_id", created.ShopID).
		Str("product", created.ProductName).
		Int("quantity", created.Quantity).
		Msg("stock added")
	return created, nil
}

func (s *InventoryService) UpdateStock(ctx context.Context, id string, in ports.UpdateStockInput) (*domain.StockEntry, error) {
	entry, err := s.stocks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.SellingPrice = in.SellingPrice
	entry.Quantity = in.Quantity
	entry.UpdatedAt = time.Now().UTC()
	if err := s.stocks.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
