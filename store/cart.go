package store

import (
	"github.com/maelcorre/bistrot-app/models"
)

// MaxQuantity is the per-line quantity ceiling.
const MaxQuantity = 10

// CartItem is one line of the cart: a menu snapshot plus a quantity.
// Descriptive fields are copied from the catalog at add time.
type CartItem struct {
	MenuID      uint    `json:"menu_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
}

// Cart holds the ordered list of line items for one session. It is a plain
// in-memory value; synchronization is the owning Session's job.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem inserts a line for the given menu item with quantity 1. If a line
// with the same menu id already exists its quantity is incremented instead
// of appending a duplicate line, clamped at MaxQuantity.
func (c *Cart) AddItem(menu models.Menu) {
	for i := range c.items {
		if c.items[i].MenuID == menu.ID {
			if c.items[i].Quantity < MaxQuantity {
				c.items[i].Quantity++
			}
			return
		}
	}
	c.items = append(c.items, CartItem{
		MenuID:      menu.ID,
		Name:        menu.Name,
		Price:       menu.Price,
		Description: menu.Description,
		ImageURL:    menu.ImageURL,
		Quantity:    1,
	})
}

// RemoveItem deletes the line with the given menu id. Removing an absent
// line is a no-op, not an error.
func (c *Cart) RemoveItem(menuID uint) {
	for i := range c.items {
		if c.items[i].MenuID == menuID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity, clamped to MaxQuantity. A
// quantity of zero or less removes the line entirely.
func (c *Cart) UpdateQuantity(menuID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuID)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}
	for i := range c.items {
		if c.items[i].MenuID == menuID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the sum of price x quantity over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Items returns a copy of the lines, decoupled from the live cart.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}
