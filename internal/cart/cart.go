// Package cart holds the shopping cart aggregate: a list of line items keyed
// by (product id, size), with product name, price and image captured at the
// moment of adding. Prices are never re-read from the catalog, so a line item
// keeps its historical price even if the catalog changes underneath it.
package cart

import (
	"context"

	"github.com/tubarao/storefront/internal/logging"
)

// DefaultSize is used when a gesture adds a product without picking a size.
const DefaultSize = "M"

type LineItem struct {
	ProductID uint    `json:"product_id"`
	Size      string  `json:"size"`
	Quantity  uint    `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// ProductInfo carries the fields a line item snapshots from the catalog.
type ProductInfo struct {
	ID    uint
	Name  string
	Price float64
	Image string
}

// Store persists the whole line-item list under the owner's key. Persistence
// is best effort: the aggregate logs and swallows Store errors.
type Store interface {
	Load(ctx context.Context, owner string) ([]LineItem, error)
	Save(ctx context.Context, owner string, items []LineItem) error
}

type Cart struct {
	owner string
	store Store
	items []LineItem
}

func New(owner string, store Store) *Cart {
	return &Cart{owner: owner, store: store}
}

// Load builds a cart from whatever the store holds for owner. A store error
// yields an empty cart, never a failure.
func Load(ctx context.Context, owner string, store Store) *Cart {
	c := New(owner, store)
	if store == nil {
		return c
	}
	items, err := store.Load(ctx, owner)
	if err != nil {
		logging.FromContext(ctx).Warn("cart load failed, starting empty", "owner", owner, "error", err)
		return c
	}
	c.items = items
	return c
}

// AddItem merges into an existing (product, size) line by incrementing its
// quantity, or appends a new line snapshotting the product. quantity 0 is
// treated as 1, an empty size as DefaultSize.
func (c *Cart) AddItem(ctx context.Context, p ProductInfo, size string, quantity uint) {
	if quantity == 0 {
		quantity = 1
	}
	if size == "" {
		size = DefaultSize
	}

	if item := c.find(p.ID, size); item != nil {
		item.Quantity += quantity
	} else {
		c.items = append(c.items, LineItem{
			ProductID: p.ID,
			Size:      size,
			Quantity:  quantity,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
		})
	}
	c.persist(ctx)
}

// UpdateQuantity sets the matching line's quantity outright. Zero removes the
// line; a missing line is a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID uint, size string, quantity uint) {
	if quantity == 0 {
		c.RemoveItem(ctx, productID, size)
		return
	}
	if item := c.find(productID, size); item != nil {
		item.Quantity = quantity
		c.persist(ctx)
	}
}

// RemoveItem deletes the matching line if present. Idempotent.
func (c *Cart) RemoveItem(ctx context.Context, productID uint, size string) {
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].Size == size {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist(ctx)
			return
		}
	}
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is Σ price×quantity over all lines; 0 for an empty cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is Σ quantity over all lines, shown on the cart badge.
func (c *Cart) ItemCount() uint {
	var count uint
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) find(productID uint, size string) *LineItem {
	for i := range c.items {
		if c.items[i].ProductID == productID && c.items[i].Size == size {
			return &c.items[i]
		}
	}
	return nil
}

func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, c.owner, c.items); err != nil {
		logging.FromContext(ctx).Warn("cart save failed", "owner", c.owner, "error", err)
	}
}
