package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// BillingService implements payment method, plan, and subscription
// administration.
type BillingService struct {
	payments ports.PaymentMethodRepository
	plans    ports.PlanRepository
	subs     ports.SubscriptionRepository
	log      zerolog.Logger
}

func NewBillingService(
	payments ports.PaymentMethodRepository,
	plans ports.PlanRepository,
	subs ports.SubscriptionRepository,
	log zerolog.Logger,
) *BillingService {
	return &BillingService{payments: payments, plans: plans, subs: subs, log: log}
}

func (s *BillingService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]*domain.PaymentMethod, error) {
	methods, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return methods, nil
	}

	active := methods[:0]
	for _, pm := range methods {
		if pm.IsActive {
			active = append(active, pm)
		}
	}
	return active, nil
}

func (s *BillingService) CreatePaymentMethod(ctx context.Context, name string) (*domain.PaymentMethod, error) {
	return s.payments.Create(ctx, &domain.PaymentMethod{Name: name, IsActive: true})
}

func (s *BillingService) UpdatePaymentMethod(ctx context.Context, id, name string, isActive bool) (*domain.PaymentMethod, error) {
	pm, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pm.Name = name
	pm.IsActive = isActive
	if err := s.payments.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *BillingService) DeletePaymentMethod(ctx context.Context, id string) error {
	if _, err := s.payments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.payments.Delete(ctx, id)
}

func (s *BillingService) ListPlans(ctx context.Context) ([]*domain.SubscriptionPlan, error) {
	return s.plans.List(ctx)
}

func (s *BillingService) CreatePlan(ctx context.Context, in ports.PlanInput) (*domain.SubscriptionPlan, error) {
	now := time.Now().UTC()
	plan := &domain.SubscriptionPlan{
		PlanName:      in.PlanName,
		Price:         in.Price,
		BillingPeriod: in.BillingPeriod,
		MaxShops:      in.MaxShops,
		MaxUsers:      in.MaxUsers,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("plan_id", created.ID).Str("name", created.PlanName).Float64("price", created.Price).Msg("plan created")
	return created, nil
}

func (s *BillingService) UpdatePlan(ctx context.Context, id string, in ports.PlanInput) (*domain.SubscriptionPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.PlanName = in.PlanName
	plan.Price = in.Price
	plan.BillingPeriod = in.BillingPeriod
	plan.MaxShops = in.MaxShops
	plan.MaxUsers = in.MaxUsers
	plan.IsActive = in.IsActive
	plan.UpdatedAt = time.Now().UTC()
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *BillingService) ListSubscriptions(ctx context.Context) ([]*domain.Subscription, error) {
	return s.subs.List(ctx)
}

func (s *BillingService) CreateSubscription(ctx context.Context, in ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	plan, err := s.plans.FindByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("%w: plan %s is inactive", domain.ErrPlanNotFound, plan.PlanName)
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{
		BusinessID: in.BusinessID,
		PlanID:     plan.ID,
		Status:     domain.SubscriptionActive,
		StartedAt:  now,
		RenewsAt:   renewalDate(plan.BillingPeriod, now),
	}

	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subscription_id", created.ID).Str("business_id", created.BusinessID).Str("plan_id", created.PlanID).Msg("subscription created")
	return created, nil
}

func (s *BillingService) UpdateSubscriptionStatus(ctx context.Context, id string, status string) (*domain.Subscription, error) {
	next := domain.SubscriptionStatus(status)
	switch next {
	case domain.SubscriptionActive, domain.SubscriptionPastDue, domain.SubscriptionCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}

	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, sub.Status, next)
	}

	if err := s.subs.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	sub.Status = next
	return sub, nil
}

// renewalDate computes the next renewal from the plan's billing period.
func renewalDate(period string, from time.Time) time.Time {
	switch period {
	case "YEARLY":
		return from.AddDate(1, 0, 0)
	default: // MONTHLY or unknown
		return from.AddDate(0, 1, 0)
	}
}
