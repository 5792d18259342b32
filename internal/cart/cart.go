package cart

import (
	"errors"
	"math"
	"sync"

	"pet-center-client/internal/models"
)

// ErrNotAuthenticated is returned by Add when no user is logged in.
// Browsing is anonymous but purchase intent requires an identity.
var ErrNotAuthenticated = errors.New("authentication required")

// SessionInfo is the slice of session state the cart needs for its
// add-to-cart guard.
type SessionInfo interface {
	IsAuthenticated() bool
}

// Line is one shop item the user intends to buy. Name, UnitPrice and
// ShelterID are snapshots taken at add time; the server re-validates
// price and stock at checkout, so a stale snapshot only affects display.
type Line struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ShelterID int64   `json:"shelter_id"`
	Quantity  int     `json:"quantity"`
}

// Cart is the in-memory purchase intent for one session. One entry per
// item id; quantities never drop below 1. The cart is created empty,
// lives for the process, and is cleared as a whole by a successful
// checkout, never partially.
type Cart struct {
	mu      sync.RWMutex
	lines   map[int64]*Line
	order   []int64 // insertion order, for deterministic iteration
	session SessionInfo
}

func New(session SessionInfo) *Cart {
	return &Cart{
		lines:   make(map[int64]*Line),
		session: session,
	}
}

// Add puts qty units of an item into the cart, accumulating onto an
// existing line when the item is already present. qty is clamped to a
// minimum of 1. Fails with ErrNotAuthenticated (and does not mutate)
// when nobody is logged in.
func (c *Cart) Add(itemID int64, name string, unitPrice float64, shelterID int64, qty int) error {
	if c.session != nil && !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	qty = clampQuantity(qty)

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[itemID]; ok {
		line.Quantity += qty
		return nil
	}

	c.lines[itemID] = &Line{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		ShelterID: shelterID,
		Quantity:  qty,
	}
	c.order = append(c.order, itemID)
	return nil
}

// SetQuantity overwrites the quantity of an existing line, clamped to a
// minimum of 1. Setting quantity on an absent item is a no-op; removal
// is only ever explicit via Remove.
func (c *Cart) SetQuantity(itemID int64, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[itemID]; ok {
		line.Quantity = clampQuantity(qty)
	}
}

// Remove deletes a line if present.
func (c *Cart) Remove(itemID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[itemID]; !ok {
		return
	}
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]*Line)
	c.order = nil
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Total is the client-side estimate of the cart's value, rounded to two
// decimals for display. The server computes the authoritative amount at
// checkout.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, line := range c.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Snapshot produces the ordered {item_id, quantity} pairs for a batch
// order request. Mutations after the snapshot do not affect a request
// already built from it.
func (c *Cart) Snapshot() []models.OrderItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.OrderItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, models.OrderItem{ItemID: id, Quantity: c.lines[id].Quantity})
	}
	return items
}

func clampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
