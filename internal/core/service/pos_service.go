package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/api/metrics"
	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// MovementDispatcher abstracts the worker queue that records stock movements
// after a committed sale.
type MovementDispatcher interface {
	Enqueue(in ports.StockMovementInput)
}

// PosService implements the point-of-sale use cases: cart mutations and
// checkout submission.
type PosService struct {
	carts     ports.CartStore
	stocks    ports.StockRepository
	sales     ports.SaleRepository
	payments  ports.PaymentMethodRepository
	movements MovementDispatcher
	log       zerolog.Logger
}

func NewPosService(
	carts ports.CartStore,
	stocks ports.StockRepository,
	sales ports.SaleRepository,
	payments ports.PaymentMethodRepository,
	movements MovementDispatcher,
	log zerolog.Logger,
) *PosService {
	return &PosService{
		carts:     carts,
		stocks:    stocks,
		sales:     sales,
		payments:  payments,
		movements: movements,
		log:       log,
	}
}

func (s *PosService) Cart(ctx context.Context, userID, shopID string) (*ports.CartView, error) {
	cart, err := s.loadCart(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	return view(cart, ""), nil
}

func (s *PosService) AddItem(ctx context.Context, userID, shopID, stockID string) (*ports.CartView, error) {
	if shopID == "" {
		return nil, domain.ErrShopRequired
	}

	stock, err := s.stocks.FindByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if stock.ShopID != shopID {
		return nil, domain.ErrStockNotFound
	}

	cart, err := s.loadCart(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(stock); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return view(cart, ""), nil
}

func (s *PosService) SetQuantity(ctx context.Context, userID, shopID, stockID string, qty int) (*ports.CartView, error) {
	cart, err := s.loadCart(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}

	clamped, err := cart.SetQuantity(stockID, qty)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, err
	}

	warning := ""
	if clamped {
		warning = domain.ErrMaxStockReached.Error()
	}
	return view(cart, warning), nil
}

func (s *PosService) RemoveItem(ctx context.Context, userID, shopID, stockID string) (*ports.CartView, error) {
	cart, err := s.loadCart(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(stockID); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return view(cart, ""), nil
}

// Checkout submits the caller's cart as a sale. On success the cart is
// cleared and a refreshed stock snapshot is returned; on failure the cart is
// left intact for an explicit retry. There is no automatic retry, since a retried
// submission could double-commit the sale. A repeated Idempotency-Key
// replays the previously committed sale without side effects.
func (s *PosService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if in.ShopID == "" {
		return nil, domain.ErrShopRequired
	}

	if in.IdempotencyKey != "" {
		existing, err := s.sales.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		switch {
		case err == nil:
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("sale_id", existing.ID).Msg("idempotent replay")
			stocks, err := s.stocks.ListByShop(ctx, in.ShopID)
			if err != nil {
				s.log.Warn().Err(err).Str("shop_id", in.ShopID).Msg("stock snapshot refresh failed")
			}
			return &ports.CheckoutResult{Sale: existing, Stocks: stocks, AlreadyExisted: true}, nil
		case !errors.Is(err, domain.ErrSaleNotFound):
			// A transport failure is not "no replay". Proceeding would risk
			// re-submitting a sale the store already holds.
			return nil, err
		}
	}

	started := time.Now()

	cart, err := s.carts.Load(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		metrics.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrCartEmpty
	}

	if err := cart.BeginCheckout(); err != nil {
		metrics.CheckoutFailuresTotal.WithLabelValues("in_flight").Inc()
		return nil, err
	}
	// Persist the in-flight state so a concurrent submission from the same
	// user is rejected on any instance.
	if err := s.carts.Save(ctx, in.UserID, cart); err != nil {
		return nil, err
	}

	sale, movements, err := s.submit(ctx, cart, in)
	if err != nil {
		// The disconnect that aborts a checkout mid-flight also cancels the
		// request context; the restore write must not inherit that
		// cancellation or the cart stays locked in CHECKING_OUT.
		restoreCtx := context.WithoutCancel(ctx)
		cart.FailCheckout()
		if saveErr := s.carts.Save(restoreCtx, in.UserID, cart); saveErr != nil {
			s.log.Error().Err(saveErr).Str("user_id", in.UserID).Msg("failed to restore cart after checkout failure")
		}
		metrics.CheckoutFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		metrics.CheckoutDuration.WithLabelValues("failed").Observe(time.Since(started).Seconds())
		return nil, err
	}

	cart.CompleteCheckout()
	if err := s.carts.Save(ctx, in.UserID, cart); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to clear cart after committed sale")
	}

	for _, m := range movements {
		s.movements.Enqueue(m)
	}

	stocks, err := s.stocks.ListByShop(ctx, in.ShopID)
	if err != nil {
		s.log.Warn().Err(err).Str("shop_id", in.ShopID).Msg("stock snapshot refresh failed")
	}

	metrics.CheckoutDuration.WithLabelValues("completed").Observe(time.Since(started).Seconds())
	s.log.Info().
		Str("sale_id", sale.ID).
		Str("shop_id", in.ShopID).
		Float64("total", sale.Total).
		Int("lines", len(sale.Items)).
		Msg("sale completed")

	return &ports.CheckoutResult{Sale: sale, Stocks: stocks}, nil
}

// submit validates the tender, applies the stock decrements, and persists the
// sale. A failure after partial decrements compensates the applied lines so
// stock levels are not left skewed.
func (s *PosService) submit(ctx context.Context, cart *domain.Cart, in ports.CheckoutInput) (*domain.Sale, []ports.StockMovementInput, error) {
	pm, err := s.payments.FindByID(ctx, in.PaymentMethodID)
	if err != nil {
		return nil, nil, err
	}
	if !pm.IsActive {
		return nil, nil, domain.ErrPaymentMethodInactive
	}

	type appliedLine struct {
		line      domain.CartLine
		remaining int
	}
	applied := make([]appliedLine, 0, len(cart.Lines))

	compensate := func() {
		// Runs when the request may already be cancelled; the increments
		// must still land or stock levels stay skewed.
		compCtx := context.WithoutCancel(ctx)
		for _, a := range applied {
			if err := s.stocks.Increment(compCtx, a.line.StockID, a.line.Quantity); err != nil {
				s.log.Error().Err(err).Str("stock_id", a.line.StockID).Int("quantity", a.line.Quantity).
					Msg("compensation failed, stock level skewed")
			}
		}
	}

	for _, line := range cart.Lines {
		remaining, err := s.stocks.Decrement(ctx, line.StockID, line.Quantity)
		if err != nil {
			compensate()
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, nil, fmt.Errorf("%w for %s", domain.ErrInsufficientStock, line.Name)
			}
			return nil, nil, err
		}
		applied = append(applied, appliedLine{line: line, remaining: remaining})
	}

	now := time.Now().UTC()
	sale := &domain.Sale{
		ShopID:          in.ShopID,
		CashierID:       in.UserID,
		PaymentMethodID: pm.ID,
		Items:           cart.Items(),
		Total:           cart.Total(),
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
	}
	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		compensate()
		return nil, nil, err
	}

	movements := make([]ports.StockMovementInput, len(applied))
	for i, a := range applied {
		movements[i] = ports.StockMovementInput{
			SaleID:    created.ID,
			StockID:   a.line.StockID,
			ProductID: a.line.ProductID,
			Delta:     -a.line.Quantity,
			Remaining: a.remaining,
			At:        now,
		}
	}

	metrics.SalesCompletedTotal.WithLabelValues(pm.Name).Inc()
	return created, movements, nil
}

// ListStocks returns the shop's stock entries. A non-empty search applies the
// POS product filter: case-insensitive name match, in-stock entries only.
func (s *PosService) ListStocks(ctx context.Context, shopID, search string) ([]*domain.StockEntry, error) {
	entries, err := s.stocks.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return entries, nil
	}

	needle := strings.ToLower(search)
	filtered := entries[:0]
	for _, e := range entries {
		if e.Quantity > 0 && strings.Contains(strings.ToLower(e.ProductName), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// loadCart fetches the user's stored cart, starting a fresh one bound to the
// shop when none exists. An empty cart left over from another shop is rebound.
func (s *PosService) loadCart(ctx context.Context, userID, shopID string) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || (cart.IsEmpty() && cart.ShopID != shopID) {
		cart = domain.NewCart(shopID)
	}
	return cart, nil
}

func view(cart *domain.Cart, warning string) *ports.CartView {
	return &ports.CartView{Cart: cart, Total: cart.Total(), Warning: warning}
}

// failureReason maps a checkout error to a bounded metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrPaymentMethodInactive), errors.Is(err, domain.ErrPaymentMethodNotFound):
		return "payment_method"
	default:
		return "persist_failed"
	}
}
