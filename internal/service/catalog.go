package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tubarao/storefront/internal/models"
)

type CatalogRepo interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// CatalogService loads the full product list once and serves it from memory.
// A full reload via Load is the only refresh mechanism.
type CatalogService struct {
	Repo CatalogRepo

	mu       sync.Mutex
	loaded   bool
	loading  bool
	products []models.Product
}

// Load fetches the whole product set, replacing the cached list.
func (s *CatalogService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	products, err := s.Repo.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.products = products
	s.loaded = true
	return nil
}

// Products returns the cached list, loading it on first use.
func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		if err := s.Load(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *CatalogService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

/// Filter is the pure catalog derivation: a case-insensitive substring match
// of query against name or category, combined with a category selector.
// An empty or "all" category disables the selector; the derivation is never
// persisted.
func Filter(products []models.Product, query, category string) []models.Product {
	q := strings.ToLower(query)
	cat := strings.ToLower(category)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		matchesQuery := q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
		matchesCategory := cat == "" || cat == "all" ||
			strings.ToLower(p.Category) == cat
		if matchesQuery && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns up to n featured products in catalog order.
func Featured(products []models.Product, n int) []models.Product {
	out := make([]models.Product, 0, n)
	for _, p := range products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}
