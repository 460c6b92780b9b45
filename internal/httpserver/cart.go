package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/cart"
	"github.com/tubarao/storefront/internal/events"
	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/service"
	"github.com/tubarao/storefront/internal/transport"
	"github.com/tubarao/storefront/internal/validate"
)

type CartHTTP struct {
	Svc      *service.CartService
	Catalog  *service.CatalogService
	Producer *events.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	view := h.Svc.View(ctx, cartOwnerFrom(c))
	return c.JSON(http.StatusOK, cartResponse(view))
}

// AddItem snapshots the product from the catalog into a line item. The
// snapshot, not the live catalog row, is what the cart keeps.
func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		l.Warn("add_to_cart_rejected", "status", 400, "reason", validate.Message(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	product, err := h.Catalog.Product(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	owner := cartOwnerFrom(c)
	view := h.Svc.AddItem(ctx, owner, cart.ProductInfo{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
	}, req.Size, req.Quantity)

	h.publishCartEvent(c, "cart_item_added", owner, req.ProductID)

	l.Info("item added to cart", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, cartResponse(view))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req transport.CartQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	owner := cartOwnerFrom(c)
	view := h.Svc.UpdateQuantity(ctx, owner, req.ProductID, req.Size, req.Quantity)

	h.publishCartEvent(c, "cart_quantity_updated", owner, req.ProductID)
	return c.JSON(http.StatusOK, cartResponse(view))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	var req transport.RemoveCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	owner := cartOwnerFrom(c)
	view := h.Svc.RemoveItem(ctx, owner, req.ProductID, req.Size)

	h.publishCartEvent(c, "cart_item_removed", owner, req.ProductID)
	return c.JSON(http.StatusOK, cartResponse(view))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	owner := cartOwnerFrom(c)
	view := h.Svc.Clear(ctx, owner)

	h.publishCartEvent(c, "cart_cleared", owner, 0)
	return c.JSON(http.StatusOK, cartResponse(view))
}

func (h *CartHTTP) publishCartEvent(c echo.Context, kind, owner string, productID uint) {
	ctx := c.Request().Context()
	event := echo.Map{"type": kind, "owner": owner, "product_id": productID}
	if err := h.Producer.Publish(ctx, events.TopicCartEvents, owner, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicCartEvents, "error", err)
	}
}

func cartResponse(view service.CartView) transport.CartResponse {
	return transport.CartResponse{
		Items: view.Items,
		Total: view.Total,
		Count: view.Count,
	}
}
