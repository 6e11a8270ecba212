package domain

import "time"

// LowStockThreshold is the remaining quantity at or below which a movement
// worker raises a low-stock warning.
const LowStockThreshold = 5

// StockEntry is a shop-scoped inventory record with available quantity and
// selling price.
type StockEntry struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ShopID       string    `json:"shop_id" bson:"shop_id"`
	ProductID    string    `json:"product_id" bson:"product_id"`
	ProductName  string    `json:"product_name" bson:"product_name"`
	SellingPrice float64   `json:"selling_price" bson:"selling_price"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// StockMovement is an audit record of a quantity change applied by a sale.
type StockMovement struct {
	SaleID    string    `json:"sale_id" bson:"sale_id"`
	StockID   string    `json:"stock_id" bson:"stock_id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	Delta     int       `json:"delta" bson:"delta"`
	Remaining int       `json:"remaining" bson:"remaining"`
	At        time.Time `json:"at" bson:"at"`
}
