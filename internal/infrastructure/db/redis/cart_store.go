package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// cartTTL bounds how long an abandoned cart survives. Every save refreshes
// it, so an active cashier never loses a cart mid-shift.
const cartTTL = 24 * time.Hour

// CartStore persists the per-user cart snapshot in Redis so an in-progress
// sale survives page reloads and instance restarts, and so the persisted
// CHECKING_OUT state is visible to every API instance.
type CartStore struct {
	client *redis.Client
}

func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{client: client}
}

// Load returns the stored cart, or (nil, nil) when the user has none.
func (s *CartStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	payload, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, userID string, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(userID), payload, cartTTL).Err()
}

func cartKey(userID string) string {
	return "cart:" + userID
}
