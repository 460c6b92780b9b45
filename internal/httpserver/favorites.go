package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tubarao/storefront/internal/events"
	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/service"
	"github.com/tubarao/storefront/internal/transport"
	"github.com/tubarao/storefront/internal/validate"
)

type FavoritesHTTP struct {
	Svc      *service.FavoritesService
	Producer *events.Producer
}

func (h *FavoritesHTTP) GetFavorites(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.list")

	sess := SessionFrom(c)
	ids, err := h.Svc.Load(ctx, sess.UserID)
	if err != nil {
		l.Error("list_favorites_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load favorites"})
	}

	return c.JSON(http.StatusOK, transport.FavoritesResponse{ProductIDs: ids})
}

// Toggle flips membership. Without a session the service fails fast and the
// 401 tells the client to prompt for sign-in.
func (h *FavoritesHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.toggle")

	var req transport.ToggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("toggle_favorite_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	userID := uuid.Nil
	if sess := SessionFrom(c); sess != nil {
		userID = sess.UserID
	}

	favorited, err := h.Svc.Toggle(ctx, userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrSignInRequired) {
			l.Warn("toggle_favorite_rejected", "status", 401)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "sign_in_required"})
		}
		l.Error("toggle_favorite_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update favorites"})
	}

	h.publishFavoriteEvent(c, userID, req.ProductID, favorited)

	l.Info("favorite toggled", "product_id", req.ProductID, "favorited", favorited)
	return c.JSON(http.StatusOK, transport.ToggleFavoriteResponse{
		ProductID: req.ProductID,
		Favorited: favorited,
	})
}

func (h *FavoritesHTTP) publishFavoriteEvent(c echo.Context, userID uuid.UUID, productID uint, favorited bool) {
	ctx := c.Request().Context()
	event := echo.Map{
		"type":       "favorite_toggled",
		"user_id":    userID.String(),
		"product_id": productID,
		"favorited":  favorited,
	}
	if err := h.Producer.Publish(ctx, events.TopicFavoriteEvents, userID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicFavoriteEvents, "error", err)
	}
}
