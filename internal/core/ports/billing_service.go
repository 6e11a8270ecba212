package ports

import (
	"context"

	"github.com/Flasky06/unify-pos/internal/core/domain"
)

// PlanInput carries the fields of a subscription plan.
type PlanInput struct {
	PlanName      string
	Price         float64
	BillingPeriod string
	MaxShops      int
	MaxUsers      int
	IsActive      bool
}

// CreateSubscriptionInput ties a business to a plan.
type CreateSubscriptionInput struct {
	BusinessID string
	PlanID     string
}

// BillingService defines subscription and tender administration use cases.
type BillingService interface {
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*domain.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, name string) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id, name string, isActive bool) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error

	ListPlans(ctx context.Context) ([]*domain.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, in PlanInput) (*domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id string, in PlanInput) (*domain.SubscriptionPlan, error)

	ListSubscriptions(ctx context.Context) ([]*domain.Subscription, error)
	CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*domain.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id string, status string) (*domain.Subscription, error)
}
