package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for movement processing backed by
// Redis. Key format: movement:<sale_id>:<stock_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this sale's movement for the stock entry has
// already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, saleID, stockID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(saleID, stockID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this movement has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, saleID, stockID string) error {
	return d.client.Set(ctx, d.key(saleID, stockID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(saleID, stockID string) string {
	return fmt.Sprintf("movement:%s:%s", saleID, stockID)
}
