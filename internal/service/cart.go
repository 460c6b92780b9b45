package service

import (
	"context"
	"sync"

	"github.com/tubarao/storefront/internal/cart"
)

// CartView is the derived state handed to the transport layer.
type CartView struct {
	Items []cart.LineItem
	Total float64
	Count uint
}

// CartService keeps one cart aggregate per owner, loaded from the store on
// first access. The store is rewritten wholesale on every mutation with
// last-write-wins semantics across instances.
type CartService struct {
	Store cart.Store

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func (s *CartService) AddItem(ctx context.Context, owner string, p cart.ProductInfo, size string, quantity uint) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(ctx, owner)
	c.AddItem(ctx, p, size, quantity)
	return view(c)
}

func (s *CartService) UpdateQuantity(ctx context.Context, owner string, productID uint, size string, quantity uint) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(ctx, owner)
	c.UpdateQuantity(ctx, productID, size, quantity)
	return view(c)
}

func (s *CartService) RemoveItem(ctx context.Context, owner string, productID uint, size string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(ctx, owner)
	c.RemoveItem(ctx, productID, size)
	return view(c)
}

func (s *CartService) Clear(ctx context.Context, owner string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartFor(ctx, owner)
	for _, item := range c.Items() {
		c.RemoveItem(ctx, item.ProductID, item.Size)
	}
	return view(c)
}

func (s *CartService) View(ctx context.Context, owner string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.cartFor(ctx, owner))
}

func (s *CartService) cartFor(ctx context.Context, owner string) *cart.Cart {
	if s.carts == nil {
		s.carts = make(map[string]*cart.Cart)
	}
	if c, ok := s.carts[owner]; ok {
		return c
	}
	c := cart.Load(ctx, owner, s.Store)
	s.carts[owner] = c
	return c
}

func view(c *cart.Cart) CartView {
	return CartView{
		Items: c.Items(),
		Total: c.Total(),
		Count: c.ItemCount(),
	}
}
