package ports

import (
	"context"
	"time"
)

// StockMovementInput is the DTO passed from the checkout path to the
// movement workers.
type StockMovementInput struct {
	SaleID    string
	StockID   string
	ProductID string
	Delta     int
	Remaining int
	At        time.Time
}

// MovementService processes post-sale stock movement events.
type MovementService interface {
	Process(ctx context.Context, in StockMovementInput) error
}
