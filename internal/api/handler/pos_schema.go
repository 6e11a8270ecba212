package handler

import (
	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

type addItemRequest struct {
	StockID string `json:"stock_id" validate:"required"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

type cartResponse struct {
	State   string            `json:"state"`
	ShopID  string            `json:"shop_id"`
	Lines   []domain.CartLine `json:"lines"`
	Total   float64           `json:"total"`
	Warning string            `json:"warning,omitempty"`
}

type checkoutResponse struct {
	Sale           *domain.Sale         `json:"sale"`
	Stocks         []*domain.StockEntry `json:"stocks"`
	AlreadyExisted bool                 `json:"already_existed,omitempty"`
}

type stockListResponse struct {
	Stocks []*domain.StockEntry `json:"stocks"`
}

func toCartResponse(v *ports.CartView) cartResponse {
	lines := v.Cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		State:   string(v.Cart.State),
		ShopID:  v.Cart.ShopID,
		Lines:   lines,
		Total:   v.Total,
		Warning: v.Warning,
	}
}
