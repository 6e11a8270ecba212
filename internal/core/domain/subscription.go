package domain

import "time"

// SubscriptionStatus represents the lifecycle state of a business subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// validTransitions defines the allowed state machine transitions.
// Cancelled is terminal.
var validTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionActive:  {SubscriptionPastDue, SubscriptionCancelled},
	SubscriptionPastDue: {SubscriptionActive, SubscriptionCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SubscriptionPlan is a pricing tier with shop and user limits.
// A zero MaxShops or MaxUsers means unlimited.
type SubscriptionPlan struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	PlanName      string    `json:"plan_name" bson:"plan_name"`
	Price         float64   `json:"price" bson:"price"`
	BillingPeriod string    `json:"billing_period" bson:"billing_period"`
	MaxShops      int       `json:"max_shops" bson:"max_shops"`
	MaxUsers      int       `json:"max_users" bson:"max_users"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// Subscription ties a business to a plan.
type Subscription struct {
	ID         string             `json:"id" bson:"_id,omitempty"`
	BusinessID string             `json:"business_id" bson:"business_id"`
	PlanID     string             `json:"plan_id" bson:"plan_id"`
	Status     SubscriptionStatus `json:"status" bson:"status"`
	StartedAt  time.Time          `json:"started_at" bson:"started_at"`
	RenewsAt   time.Time          `json:"renews_at" bson:"renews_at"`
}
