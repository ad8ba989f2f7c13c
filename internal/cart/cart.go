package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/types"
)

// DefaultStepKg is the quantity added per tap on the storefront. New lines
// start here too.
var DefaultStepKg = decimal.RequireFromString("0.5")

// Line is a single product entry in a cart. Quantities are kilograms.
type Line struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}

// Cart is the pre-checkout selection. It holds at most one line per product;
// adding a product already present bumps its quantity instead.
type Cart struct {
	Lines         []Line `json:"lines"`
	CustomPacking bool   `json:"custom_packing"`
}

// Empty returns a cart with no lines.
func Empty() *Cart {
	return &Cart{Lines: []Line{}}
}

func (c *Cart) findLine(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem bumps the product's quantity by the default step, inserting a new
// line at that step when the product is not yet in the cart.
func (c *Cart) AddItem(product *models.Product) {
	if i := c.findLine(product.ID); i >= 0 {
		c.Lines[i].QuantityKg = c.Lines[i].QuantityKg.Add(DefaultStepKg)
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID:  product.ID,
		Name:       product.Name,
		PricePerKg: product.PricePerKg,
		QuantityKg: DefaultStepKg,
	})
}

// UpdateQuantity sets the line's quantity verbatim. A quantity of zero or
// less removes the line. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantityKg decimal.Decimal) {
	i := c.findLine(productID)
	if i < 0 {
		return
	}
	if quantityKg.Sign() <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return
	}
	c.Lines[i].QuantityKg = quantityKg
}

// RemoveItem drops the product's line, no-op if absent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if i := c.findLine(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart and resets the custom packing flag.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.CustomPacking = false
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalAmount is the exact decimal sum of price times quantity over all lines.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.PricePerKg.Mul(line.QuantityKg))
	}
	return total
}

// Snapshot freezes the cart into order items. Subtotals are computed here
// once and never re-derived from live product rows.
func (c *Cart) Snapshot() types.OrderItems {
	items := make(types.OrderItems, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, types.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			PricePerKg: line.PricePerKg,
			QuantityKg: line.QuantityKg,
			Subtotal:   line.PricePerKg.Mul(line.QuantityKg),
		})
	}
	return items
}
