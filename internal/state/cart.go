package state

import (
	"fmt"
	"math"
	"sync"

	"tupyme/internal/domain"

	"github.com/google/uuid"
)

// Cart holds the ordered line items of one session. The subtotal is
// always recomputed from the items, never stored.
type Cart struct {
	mu    sync.Mutex
	items []domain.CartItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends a line item built from a resolved catalog service.
// Services still carrying the variable-price sentinel or a pending
// per-person quantity must be finalized first.
func (c *Cart) AddItem(svc domain.CatalogService) (domain.CartItem, error) {
	if svc.Price == domain.PriceVariable {
		return domain.CartItem{}, fmt.Errorf("service %q has an unresolved price", svc.Name)
	}
	if svc.PerPerson {
		return domain.CartItem{}, fmt.Errorf("service %q needs a quantity before entering the cart", svc.Name)
	}
	if svc.Price < 0 {
		return domain.CartItem{}, fmt.Errorf("service %q has a negative price", svc.Name)
	}

	item := domain.CartItem{
		ID:          uuid.New().String(),
		Title:       svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	return item, nil
}

// RemoveItem removes the line with the given id. Removing an id that is
// not present is a no-op, so removal is idempotent.
func (c *Cart) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called once an order reaches paid.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal recomputes the sum of all line prices
func (c *Cart) Subtotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// FinalizeQuantity resolves a per-person service into a concrete one:
// price becomes unit price times quantity (never below one person) and
// the per-person flag is cleared so the cart won't re-prompt.
func FinalizeQuantity(svc domain.CatalogService, quantity int) domain.CatalogService {
	if quantity < 1 {
		quantity = 1
	}

	svc.Price = svc.Price * quantity
	svc.PerPerson = false
	return svc
}

// BundleTotal prices the full plan bundle: the sum of the fixed
// components plus the selected variant, minus the discount rate,
// truncated to a whole peso. It is computed fresh on every variant
// change; nothing is carried over from the previous selection.
func BundleTotal(components []domain.CatalogService, variant domain.CatalogService, discountRate float64) int {
	sum := variant.Price
	for _, component := range components {
		sum += component.Price
	}

	return int(math.Floor(float64(sum) * (1 - discountRate)))
}
