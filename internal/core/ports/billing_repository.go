package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// PaymentMethodRepository defines persistence for checkout tender types.
type PaymentMethodRepository interface {
	List(ctx context.Context) ([]*domain.PaymentMethod, error)
	FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	Create(ctx context.Context, pm *domain.PaymentMethod) (*domain.PaymentMethod, error)
	Update(ctx context.Context, pm *domain.PaymentMethod) error
	Delete(ctx context.Context, id string) error
}

// PlanRepository defines persistence for subscription plans.
type PlanRepository interface {
	// List returns all plans ordered by ascending price.
	List(ctx context.Context) ([]*domain.SubscriptionPlan, error)
	FindByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	Create(ctx context.Context, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error)
	Update(ctx context.Context, plan *domain.SubscriptionPlan) error
}

// SubscriptionRepository defines persistence for business subscriptions.
type SubscriptionRepository interface {
	List(ctx context.Context) ([]*domain.Subscription, error)
	FindByID(ctx context.Context, id string) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error
}
