package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// BillingHandler handles payment method, plan, and subscription endpoints.
type BillingHandler struct {
	service ports.BillingService
}

func NewBillingHandler(service ports.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

type paymentMethodRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

type paymentMethodListResponse struct {
	PaymentMethods []*domain.PaymentMethod `json:"payment_methods"`
}

type planRequest struct {
	PlanName      string  `json:"plan_name"      validate:"required"`
	Price         float64 `json:"price"          validate:"min=0"`
	BillingPeriod string  `json:"billing_period" validate:"required,oneof=MONTHLY YEARLY"`
	MaxShops      int     `json:"max_shops"      validate:"min=0"`
	MaxUsers      int     `json:"max_users"      validate:"min=0"`
	IsActive      bool    `json:"is_active"`
}

type planListResponse struct {
	Plans []*domain.SubscriptionPlan `json:"plans"`
}

type createSubscriptionRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
	PlanID     string `json:"plan_id"     validate:"required"`
}

type updateSubscriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE PAST_DUE CANCELLED"`
}

type subscriptionListResponse struct {
	Subscriptions []*domain.Subscription `json:"subscriptions"`
}

// ListPaymentMethods handles GET /v1/payment-methods. The active=true query
// restricts the list to tenders usable at checkout.
//
// @Summary      List payment methods
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active tenders"
// @Success      200     {object}  paymentMethodListResponse
// @Router       /v1/payment-methods [get]
func (h *BillingHandler) ListPaymentMethods(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	methods, err := h.service.ListPaymentMethods(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	if methods == nil {
		methods = []*domain.PaymentMethod{}
	}
	return c.JSON(http.StatusOK, paymentMethodListResponse{PaymentMethods: methods})
}

// CreatePaymentMethod handles POST /v1/payment-methods.
//
// @Summary      Create a payment method
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentMethodRequest  true  "Payment method details"
// @Success      201   {object}  domain.PaymentMethod
// @Failure      400   {object}  map[string]string
// @Router       /v1/payment-methods [post]
func (h *BillingHandler) CreatePaymentMethod(c echo.Context) error {
	var req paymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pm, err := h.service.CreatePaymentMethod(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pm)
}

// UpdatePaymentMethod handles PUT /v1/payment-methods/:id. Deactivating a
// tender removes it from checkout without touching historical sales.
//
// @Summary      Update a payment method
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Payment method ID"
// @Param        body  body      paymentMethodRequest  true  "Payment method fields"
// @Success      200   {object}  domain.PaymentMethod
// @Failure      404   {object}  map[string]string
// @Router       /v1/payment-methods/{id} [put]
func (h *BillingHandler) UpdatePaymentMethod(c echo.Context) error {
	var req paymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	pm, err := h.service.UpdatePaymentMethod(c.Request().Context(), c.Param("id"), req.Name, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pm)
}

// DeletePaymentMethod handles DELETE /v1/payment-methods/:id.
//
// @Summary      Delete a payment method
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Payment method ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Router       /v1/payment-methods/{id} [delete]
func (h *BillingHandler) DeletePaymentMethod(c echo.Context) error {
	if err := h.service.DeletePaymentMethod(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPlans handles GET /v1/plans. Returns all plans, cheapest first.
//
// @Summary      List subscription plans
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  planListResponse
// @Router       /v1/plans [get]
func (h *BillingHandler) ListPlans(c echo.Context) error {
	plans, err := h.service.ListPlans(c.Request().Context())
	if err != nil {
		return err
	}
	if plans == nil {
		plans = []*domain.SubscriptionPlan{}
	}
	return c.JSON(http.StatusOK, planListResponse{Plans: plans})
}

// CreatePlan handles POST /v1/plans.
//
// @Summary      Create a subscription plan
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      planRequest  true  "Plan details"
// @Success      201   {object}  domain.SubscriptionPlan
// @Failure      400   {object}  map[string]string
// @Router       /v1/plans [post]
func (h *BillingHandler) CreatePlan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.service.CreatePlan(c.Request().Context(), toPlanInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// UpdatePlan handles PUT /v1/plans/:id.
//
// @Summary      Update a subscription plan
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Plan ID"
// @Param        body  body      planRequest  true  "Plan fields"
// @Success      200   {object}  domain.SubscriptionPlan
// @Failure      404   {object}  map[string]string
// @Router       /v1/plans/{id} [put]
func (h *BillingHandler) UpdatePlan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plan, err := h.service.UpdatePlan(c.Request().Context(), c.Param("id"), toPlanInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// ListSubscriptions handles GET /v1/subscriptions.
//
// @Summary      List subscriptions
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  subscriptionListResponse
// @Router       /v1/subscriptions [get]
func (h *BillingHandler) ListSubscriptions(c echo.Context) error {
	subs, err := h.service.ListSubscriptions(c.Request().Context())
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.Subscription{}
	}
	return c.JSON(http.StatusOK, subscriptionListResponse{Subscriptions: subs})
}

// CreateSubscription handles POST /v1/subscriptions.
//
// @Summary      Subscribe a business to a plan
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubscriptionRequest  true  "Subscription details"
// @Success      201   {object}  domain.Subscription
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/subscriptions [post]
func (h *BillingHandler) CreateSubscription(c echo.Context) error {
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.service.CreateSubscription(c.Request().Context(), ports.CreateSubscriptionInput{
		BusinessID: req.BusinessID,
		PlanID:     req.PlanID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// UpdateSubscriptionStatus handles PATCH /v1/subscriptions/:id/status.
//
// @Summary      Transition a subscription's status
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                           true  "Subscription ID"
// @Param        body  body      updateSubscriptionStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Subscription
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/subscriptions/{id}/status [patch]
func (h *BillingHandler) UpdateSubscriptionStatus(c echo.Context) error {
	var req updateSubscriptionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.service.UpdateSubscriptionStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

func toPlanInput(req planRequest) ports.PlanInput {
	return ports.PlanInput{
		PlanName:      req.PlanName,
		Price:         req.Price,
		BillingPeriod: req.BillingPeriod,
		MaxShops:      req.MaxShops,
		MaxUsers:      req.MaxUsers,
		IsActive:      req.IsActive,
	}
}
