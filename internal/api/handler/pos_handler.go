package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// PosHandler handles the cashier-facing cart and checkout endpoints.
type PosHandler struct {
	service ports.PosService
}

func NewPosHandler(service ports.PosService) *PosHandler {
	return &PosHandler{service: service}
}

// Cart handles GET /v1/pos/cart. Returns the caller's current cart.
//
// @Summary      Get the current cart
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/pos/cart [get]
func (h *PosHandler) Cart(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.service.Cart(c.Request().Context(), session.UserID, shopScope(c, session))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// AddItem handles POST /v1/pos/cart/items. Adds one unit of a stock entry.
//
// @Summary      Add one unit of a product to the cart
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Stock entry to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/pos/cart/items [post]
func (h *PosHandler) AddItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.AddItem(c.Request().Context(), session.UserID, shopScope(c, session), req.StockID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// SetQuantity handles PUT /v1/pos/cart/items/:stock_id. Sets an exact
// quantity. A quantity below 1 removes the line; one above the available
// stock is clamped and reported through the warning field.
//
// @Summary      Set the quantity of a cart line
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        stock_id  path      string              true  "Stock entry ID"
// @Param        body      body      setQuantityRequest  true  "Desired quantity"
// @Success      200       {object}  cartResponse
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /v1/pos/cart/items/{stock_id} [put]
func (h *PosHandler) SetQuantity(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.SetQuantity(c.Request().Context(), session.UserID, shopScope(c, session), c.Param("stock_id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// RemoveItem handles DELETE /v1/pos/cart/items/:stock_id.
//
// @Summary      Remove a line from the cart
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        stock_id  path      string  true  "Stock entry ID"
// @Success      200       {object}  cartResponse
// @Failure      409       {object}  map[string]string
// @Router       /v1/pos/cart/items/{stock_id} [delete]
func (h *PosHandler) RemoveItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.service.RemoveItem(c.Request().Context(), session.UserID, shopScope(c, session), c.Param("stock_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// Checkout handles POST /v1/pos/checkout. Submits the cart as a sale.
//
// @Summary      Submit the cart as a sale
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Idempotency key to replay a retried submission"
// @Param        body             body      checkoutRequest  true   "Checkout details"
// @Success      201              {object}  checkoutResponse
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /v1/pos/checkout [post]
func (h *PosHandler) Checkout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID:          session.UserID,
		ShopID:          shopScope(c, session),
		PaymentMethodID: req.PaymentMethodID,
		IdempotencyKey:  c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, checkoutResponse{
		Sale:           result.Sale,
		Stocks:         result.Stocks,
		AlreadyExisted: result.AlreadyExisted,
	})
}

// ListStocks handles GET /v1/pos/stocks. Returns the sellable entries for the
// caller's shop, optionally filtered by a product name search.
//
// @Summary      List sellable stock entries
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  false  "Case-insensitive product name filter"
// @Success      200  {object}  stockListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/pos/stocks [get]
func (h *PosHandler) ListStocks(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	stocks, err := h.service.ListStocks(c.Request().Context(), shopScope(c, session), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if stocks == nil {
		stocks = []*domain.StockEntry{}
	}
	return c.JSON(http.StatusOK, stockListResponse{Stocks: stocks})
}

// ListStocksByShop handles GET /v1/stocks/by-shop/:shop_id. Returns the full stock
// list for a named shop, for roles not bound to a single shop.
//
// @Summary      List stock entries for a shop
// @Tags         stocks
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string  true   "Shop ID"
// @Param        q        query     string  false  "Case-insensitive product name filter"
// @Success      200      {object}  stockListResponse
// @Failure      401      {object}  map[string]string
// @Router       /v1/stocks/by-shop/{shop_id} [get]
func (h *PosHandler) ListStocksByShop(c echo.Context) error {
	stocks, err := h.service.ListStocks(c.Request().Context(), c.Param("shop_id"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if stocks == nil {
		stocks = []*domain.StockEntry{}
	}
	return c.JSON(http.StatusOK, stockListResponse{Stocks: stocks})
}
