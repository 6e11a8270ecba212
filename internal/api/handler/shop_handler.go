package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// ShopHandler handles shop management endpoints.
type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

type createShopRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

type updateShopRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

type shopListResponse struct {
	Shops []*domain.Shop `json:"shops"`
}

// Create handles POST /v1/shops.
//
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShopRequest  true  "Shop details"
// @Success      201   {object}  domain.Shop
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/shops [post]
func (h *ShopHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.service.CreateShop(c.Request().Context(), ports.CreateShopInput{
		Name:     req.Name,
		Location: req.Location,
		OwnerID:  session.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shop)
}

// canAccessShop reports whether the session may act on the shop. Super
// admins may act on any shop; other roles only on shops they own.
func canAccessShop(s *domain.Session, shop *domain.Shop) bool {
	return s.HasRole(domain.RoleSuperAdmin) || shop.OwnerID == s.UserID
}

// Get handles GET /v1/shops/:id.
//
// @Summary      Get a shop by ID
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shop ID"
// @Success      200  {object}  domain.Shop
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/shops/{id} [get]
func (h *ShopHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	shop, err := h.service.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !canAccessShop(session, shop) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, shop)
}

// List handles GET /v1/shops. Owners see their own shops; super admins see
// every shop.
//
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  shopListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/shops [get]
func (h *ShopHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	ownerID := session.UserID
	if session.HasRole(domain.RoleSuperAdmin) {
		ownerID = ""
	}

	shops, err := h.service.ListShops(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	if shops == nil {
		shops = []*domain.Shop{}
	}
	return c.JSON(http.StatusOK, shopListResponse{Shops: shops})
}

// Update handles PUT /v1/shops/:id.
//
// @Summary      Update a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Shop ID"
// @Param        body  body      updateShopRequest  true  "Shop details"
// @Success      200   {object}  domain.Shop
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/shops/{id} [put]
func (h *ShopHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	existing, err := h.service.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !canAccessShop(session, existing) {
		return domain.ErrForbidden
	}

	shop, err := h.service.UpdateShop(c.Request().Context(), c.Param("id"), ports.UpdateShopInput{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// Delete handles DELETE /v1/shops/:id.
//
// @Summary      Delete a shop
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Shop ID"
// @Success      204  "No Content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/shops/{id} [delete]
func (h *ShopHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	existing, err := h.service.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !canAccessShop(session, existing) {
		return domain.ErrForbidden
	}

	if err := h.service.DeleteShop(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
