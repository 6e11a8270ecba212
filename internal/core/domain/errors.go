package domain

import "errors"

var (
	// Auth / session
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")

	// Cart / checkout
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrMaxStockReached       = errors.New("max stock reached")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrCheckoutInFlight      = errors.New("checkout already in progress")
	ErrShopRequired          = errors.New("no shop assigned to this account")
	ErrPaymentMethodInactive = errors.New("payment method is not active")

	// Entities
	ErrShopNotFound          = errors.New("shop not found")
	ErrStockNotFound         = errors.New("stock entry not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPlanNotFound          = errors.New("subscription plan not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")

	// Subscription lifecycle
	ErrInvalidTransition = errors.New("invalid subscription status transition")
)
