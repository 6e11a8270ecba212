package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

type stubPosService struct {
	cart         *domain.Cart
	lastCheckout *ports.CheckoutInput
	checkoutErr  error
}

func newStubPosService() *stubPosService {
	cart := domain.NewCart("shop_1")
	return &stubPosService{cart: cart}
}

func (s *stubPosService) view() *ports.CartView {
	return &ports.CartView{Cart: s.cart, Total: s.cart.Total()}
}

func (s *stubPosService) Cart(_ context.Context, _, _ string) (*ports.CartView, error) {
	return s.view(), nil
}

func (s *stubPosService) AddItem(_ context.Context, _, _, stockID string) (*ports.CartView, error) {
	if stockID == "sold_out" {
		return nil, domain.ErrInsufficientStock
	}
	_ = s.cart.AddItem(&domain.StockEntry{ID: stockID, ProductID: "p1", ProductName: "Soda", SellingPrice: 2, Quantity: 5})
	return s.view(), nil
}

func (s *stubPosService) SetQuantity(_ context.Context, _, _, stockID string, qty int) (*ports.CartView, error) {
	clamped, err := s.cart.SetQuantity(stockID, qty)
	if err != nil {
		return nil, err
	}
	v := s.view()
	if clamped {
		v.Warning = domain.ErrMaxStockReached.Error()
	}
	return v, nil
}

func (s *stubPosService) RemoveItem(_ context.Context, _, _, stockID string) (*ports.CartView, error) {
	_ = s.cart.RemoveItem(stockID)
	return s.view(), nil
}

func (s *stubPosService) Checkout(_ context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	s.lastCheckout = &in
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return &ports.CheckoutResult{
		Sale:   &domain.Sale{ID: "sale_1", ShopID: in.ShopID, Total: s.cart.Total()},
		Stocks: []*domain.StockEntry{},
	}, nil
}

func (s *stubPosService) ListStocks(_ context.Context, shopID, _ string) ([]*domain.StockEntry, error) {
	return []*domain.StockEntry{{ID: "s1", ShopID: shopID, ProductName: "Soda", Quantity: 5}}, nil
}

func posSession() *domain.Session {
	return &domain.Session{
		ID:          "SES-1",
		UserID:      "u1",
		Role:        domain.RoleCashier,
		Permissions: domain.RoleCashier.Permissions(),
		ShopID:      "shop_1",
	}
}

func TestPosHandler_Cart(t *testing.T) {
	h := NewPosHandler(newStubPosService())

	c, rec := newTestContext(t, http.MethodGet, "/v1/pos/cart", "")
	c.Set("session", posSession())

	if err := h.Cart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.State != string(domain.CartEmpty) || body.Lines == nil {
		t.Fatalf("expected empty cart with non-null lines, got %+v", body)
	}
}

func TestPosHandler_AddItem(t *testing.T) {
	h := NewPosHandler(newStubPosService())

	c, rec := newTestContext(t, http.MethodPost, "/v1/pos/cart/items", `{"stock_id":"s1"}`)
	c.Set("session", posSession())

	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Lines) != 1 || body.Total != 2 {
		t.Fatalf("unexpected cart: %+v", body)
	}
}

func TestPosHandler_AddItem_SoldOut(t *testing.T) {
	h := NewPosHandler(newStubPosService())

	c, _ := newTestContext(t, http.MethodPost, "/v1/pos/cart/items", `{"stock_id":"sold_out"}`)
	c.Set("session", posSession())

	if err := h.AddItem(c); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock passthrough, got %v", err)
	}
}

func TestPosHandler_SetQuantity_WarnsOnClamp(t *testing.T) {
	svc := newStubPosService()
	h := NewPosHandler(svc)

	addCtx, _ := newTestContext(t, http.MethodPost, "/v1/pos/cart/items", `{"stock_id":"s1"}`)
	addCtx.Set("session", posSession())
	if err := h.AddItem(addCtx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	c, rec := newTestContext(t, http.MethodPut, "/v1/pos/cart/items/s1", `{"quantity":99}`)
	c.Set("session", posSession())
	c.SetParamNames("stock_id")
	c.SetParamValues("s1")

	if err := h.SetQuantity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Warning == "" {
		t.Fatalf("expected clamp warning in response")
	}
	if body.Lines[0].Quantity != 5 {
		t.Fatalf("expected clamped quantity 5, got %d", body.Lines[0].Quantity)
	}
}

func TestPosHandler_Checkout_PassesIdempotencyKey(t *testing.T) {
	svc := newStubPosService()
	h := NewPosHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/v1/pos/checkout", `{"payment_method_id":"pm_cash"}`)
	c.Request().Header.Set("Idempotency-Key", "key-9")
	c.Set("session", posSession())

	if err := h.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCheckout == nil {
		t.Fatalf("service not called")
	}
	if svc.lastCheckout.IdempotencyKey != "key-9" {
		t.Fatalf("idempotency key not forwarded: %q", svc.lastCheckout.IdempotencyKey)
	}
	if svc.lastCheckout.ShopID != "shop_1" {
		t.Fatalf("shop not taken from session: %q", svc.lastCheckout.ShopID)
	}
}

func TestPosHandler_Checkout_FailurePassthrough(t *testing.T) {
	svc := newStubPosService()
	svc.checkoutErr = domain.ErrCartEmpty
	h := NewPosHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/v1/pos/checkout", `{"payment_method_id":"pm_cash"}`)
	c.Set("session", posSession())

	if err := h.Checkout(c); !errors.Is(err, domain.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty passthrough, got %v", err)
	}
}

func TestPosHandler_ListStocks(t *testing.T) {
	h := NewPosHandler(newStubPosService())

	c, rec := newTestContext(t, http.MethodGet, "/v1/pos/stocks?q=soda", "")
	c.Set("session", posSession())

	if err := h.ListStocks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body stockListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Stocks) != 1 {
		t.Fatalf("expected one entry, got %d", len(body.Stocks))
	}
}
