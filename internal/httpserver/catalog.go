package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/search"
	"github.com/tubarao/storefront/internal/service"
)

type CatalogHTTP struct {
	Svc     *service.CatalogService
	ES      *elasticsearch.Client
	ESIndex string
}

// GetProducts serves the cached catalog filtered by the q and category query
// parameters. featured=true narrows to featured products.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	products, err := h.Svc.Products(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load products"})
	}

	filtered := service.Filter(products, c.QueryParam("q"), c.QueryParam("category"))
	if c.QueryParam("featured") == "true" {
		limit := 6
		if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
			limit = n
		}
		filtered = service.Featured(filtered, limit)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": filtered,
		"loading":  h.Svc.Loading(),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.Svc.Product(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.categories")

	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		l.Error("list_categories_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, categories)
}

// Search is the fuzzy path. Without an Elasticsearch client it degrades to
// the exact in-memory filter.
func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	if h.ES == nil {
		products, err := h.Svc.Products(ctx)
		if err != nil {
			l.Error("search_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		filtered := service.Filter(products, query, "")
		return c.JSON(http.StatusOK, echo.Map{"total": len(filtered), "products": filtered})
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = 20
	}

	total, products, err := search.Products(ctx, h.ES, h.ESIndex, query, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
