package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/api/metrics"
	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for movement events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, saleID, stockID string) (bool, error)
	Mark(ctx context.Context, saleID, stockID string) error
}

type movementService struct {
	movements ports.MovementRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewMovementService returns a MovementService implementation.
func NewMovementService(movements ports.MovementRepository, dedup DedupChecker, log zerolog.Logger) ports.MovementService {
	return &movementService{movements: movements, dedup: dedup, log: log}
}

// Process deduplicates and persists a single stock movement audit record,
// raising a low-stock warning when the remaining quantity is at or below the
// threshold.
func (s *movementService) Process(ctx context.Context, in ports.StockMovementInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.SaleID, in.StockID)
	if err != nil {
		s.log.Warn().Err(err).Str("sale_id", in.SaleID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("sale_id", in.SaleID).Str("stock_id", in.StockID).Msg("duplicate movement skipped")
		metrics.MovementsProcessedTotal.WithLabelValues("duplicate").Inc()
		return nil
	}

	// Mark before writing so a crashed retry cannot double-record.
	if markErr := s.dedup.Mark(ctx, in.SaleID, in.StockID); markErr != nil {
		s.log.Warn().Err(markErr).Str("sale_id", in.SaleID).Msg("failed to set dedup key")
	}

	movement := &domain.StockMovement{
		SaleID:    in.SaleID,
		StockID:   in.StockID,
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Remaining: in.Remaining,
		At:        in.At,
	}
	if err := s.movements.Insert(ctx, movement); err != nil {
		metrics.MovementsProcessedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("process movement: %w", err)
	}

	if in.Remaining <= domain.LowStockThreshold {
		metrics.LowStockWarningsTotal.Inc()
		s.log.Warn().
			Str("stock_id", in.StockID).
			Str("product_id", in.ProductID).
			Int("remaining", in.Remaining).
			Msg("stock running low")
	}

	metrics.MovementsProcessedTotal.WithLabelValues("processed").Inc()
	s.log.Info().
		Str("sale_id", in.SaleID).
		Str("stock_id", in.StockID).
		Int("delta", in.Delta).
		Int("remaining", in.Remaining).
		Msg("movement recorded")

	return nil
}
