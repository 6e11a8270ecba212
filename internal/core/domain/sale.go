package domain

import "time"

// SaleItem is one product line of a committed sale.
type SaleItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Sale is a committed point-of-sale transaction.
type Sale struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	ShopID          string     `json:"shop_id" bson:"shop_id"`
	CashierID       string     `json:"cashier_id" bson:"cashier_id"`
	PaymentMethodID string     `json:"payment_method_id" bson:"payment_method_id"`
	Items           []SaleItem `json:"items" bson:"items"`
	Total           float64    `json:"total" bson:"total"`
	IdempotencyKey  string     `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}

// PaymentMethod is a tender type accepted at checkout.
type PaymentMethod struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	IsActive bool   `json:"is_active" bson:"is_active"`
}
