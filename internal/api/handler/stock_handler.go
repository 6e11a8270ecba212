package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// StockHandler handles stock intake and adjustment endpoints.
type StockHandler struct {
	service ports.StockService
}

func NewStockHandler(service ports.StockService) *StockHandler {
	return &StockHandler{service: service}
}

type addStockRequest struct {
	ShopID       string  `json:"shop_id"       validate:"required"`
	ProductID    string  `json:"product_id"    validate:"required"`
	ProductName  string  `json:"product_name"  validate:"required"`
	SellingPrice float64 `json:"selling_price" validate:"required,gt=0"`
	Quantity     int     `json:"quantity"      validate:"min=0"`
}

type updateStockRequest struct {
	SellingPrice float64 `json:"selling_price" validate:"required,gt=0"`
	Quantity     int     `json:"quantity"      validate:"min=0"`
}

// Add handles POST /v1/stocks. Records a new stock entry for a shop.
//
// @Summary      Add a stock entry
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addStockRequest  true  "Stock entry details"
// @Success      201   {object}  domain.StockEntry
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/stocks [post]
func (h *StockHandler) Add(c echo.Context) error {
	var req addStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry, err := h.service.AddStock(c.Request().Context(), ports.AddStockInput{
		ShopID:       req.ShopID,
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Update handles PUT /v1/stocks/:id. Adjusts price and quantity.
//
// @Summary      Update a stock entry
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Stock entry ID"
// @Param        body  body      updateStockRequest  true  "Stock entry fields"
// @Success      200   {object}  domain.StockEntry
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/stocks/{id} [put]
func (h *StockHandler) Update(c echo.Context) error {
	var req updateStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry, err := h.service.UpdateStock(c.Request().Context(), c.Param("id"), ports.UpdateStockInput{
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
