package domain

import "fmt"

// CartState is the explicit lifecycle state of an in-progress sale.
type CartState string

const (
	CartEmpty       CartState = "EMPTY"
	CartBuilding    CartState = "BUILDING"
	CartCheckingOut CartState = "CHECKING_OUT"
	CartCompleted   CartState = "COMPLETED"
	CartFailed      CartState = "FAILED"
)

// CartLine is one product's quantity within an in-progress sale.
// Invariant: 1 <= Quantity <= MaxQuantity.
type CartLine struct {
	StockID     string  `json:"stock_id"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"max_quantity"`
}

// Subtotal returns UnitPrice x Quantity for the line.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart holds the ordered lines of an in-progress sale, keyed by unique stock
// ID. The total is always recomputed from the lines so it can never desync.
//
// A completed checkout clears the lines (the next sale starts fresh); a
// failed checkout keeps them intact so the cashier can retry explicitly.
// While a checkout is in flight every mutation is rejected; that state
// check is the only re-entrancy guard, there is no lock.
type Cart struct {
	State  CartState  `json:"state"`
	ShopID string     `json:"shop_id"`
	Lines  []CartLine `json:"lines"`
}

// NewCart returns an empty cart bound to a shop.
func NewCart(shopID string) *Cart {
	return &Cart{State: CartEmpty, ShopID: shopID}
}

// AddItem adds one unit of the given stock entry. Out-of-stock entries are
// never addable. An existing line grows by 1 unless it already holds all
// available stock, in which case the cart is left unchanged and
// ErrInsufficientStock is returned.
func (c *Cart) AddItem(stock *StockEntry) error {
	if c.State == CartCheckingOut {
		return ErrCheckoutInFlight
	}
	if stock.Quantity <= 0 {
		return fmt.Errorf("%w: %s is out of stock", ErrInsufficientStock, stock.ProductName)
	}

	for i := range c.Lines {
		if c.Lines[i].StockID == stock.ID {
			if c.Lines[i].Quantity >= c.Lines[i].MaxQuantity {
				return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, c.Lines[i].MaxQuantity, c.Lines[i].Name)
			}
			c.Lines[i].Quantity++
			c.State = CartBuilding
			return nil
		}
	}

	c.Lines = append(c.Lines, CartLine{
		StockID:     stock.ID,
		ProductID:   stock.ProductID,
		Name:        stock.ProductName,
		UnitPrice:   stock.SellingPrice,
		Quantity:    1,
		MaxQuantity: stock.Quantity,
	})
	c.State = CartBuilding
	return nil
}

// SetQuantity sets a line to an exact quantity. A quantity below 1 removes
// the line. A quantity above the line's available stock is clamped to the
// maximum; clamped reports that so callers can surface a warning. Setting a
// quantity on an absent line is a no-op.
func (c *Cart) SetQuantity(stockID string, qty int) (clamped bool, err error) {
	if c.State == CartCheckingOut {
		return false, ErrCheckoutInFlight
	}
	if qty < 1 {
		return false, c.RemoveItem(stockID)
	}

	for i := range c.Lines {
		if c.Lines[i].StockID != stockID {
			continue
		}
		if qty > c.Lines[i].MaxQuantity {
			c.Lines[i].Quantity = c.Lines[i].MaxQuantity
			c.State = CartBuilding
			return true, nil
		}
		c.Lines[i].Quantity = qty
		c.State = CartBuilding
		return false, nil
	}
	return false, nil
}

// RemoveItem deletes a line; absent lines are a no-op.
func (c *Cart) RemoveItem(stockID string) error {
	if c.State == CartCheckingOut {
		return ErrCheckoutInFlight
	}
	for i := range c.Lines {
		if c.Lines[i].StockID == stockID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			break
		}
	}
	if len(c.Lines) == 0 {
		c.State = CartEmpty
	} else {
		c.State = CartBuilding
	}
	return nil
}

// Total recomputes the cart total from its lines on every call.
func (c *Cart) Total() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Subtotal()
	}
	return sum
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// BeginCheckout moves the cart into the in-flight state. It refuses empty
// carts and carts that are already checking out.
func (c *Cart) BeginCheckout() error {
	if c.State == CartCheckingOut {
		return ErrCheckoutInFlight
	}
	if c.IsEmpty() {
		return ErrCartEmpty
	}
	c.State = CartCheckingOut
	return nil
}

// CompleteCheckout records a committed sale: the lines are cleared and the
// next interaction starts a fresh sale.
func (c *Cart) CompleteCheckout() {
	c.State = CartCompleted
	c.Lines = nil
}

// FailCheckout returns the cart to the building state with its lines intact
// so the cashier can retry explicitly.
func (c *Cart) FailCheckout() {
	c.State = CartFailed
}

// Items converts the cart lines into sale items for submission.
func (c *Cart) Items() []SaleItem {
	items := make([]SaleItem, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = SaleItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return items
}
