package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tubarao/storefront/internal/events"
	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/service"
	"github.com/tubarao/storefront/internal/transport"
	"github.com/tubarao/storefront/internal/validate"
)

type AuthHTTP struct {
	Svc       *service.AuthService
	Favorites *service.FavoritesService
	Producer  *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		l.Warn("register_rejected", "status", 400, "reason", validate.Message(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	sess, pair, err := h.Svc.SignUp(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.setSessionCookies(c, pair)
	h.publishUserEvent(c, "user_registered", sess)

	// a fresh account has no favorites; start its set empty
	if _, err := h.Favorites.Load(ctx, sess.UserID); err != nil {
		l.Warn("favorites_load_failed", "error", err)
	}

	l.Info("user registered", "user_id", sess.UserID)
	return c.JSON(http.StatusCreated, transport.SessionResponse{
		UserID: sess.UserID.String(),
		Name:   sess.Name,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		l.Warn("login_rejected", "status", 400, "reason", validate.Message(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validate.Message(err)})
	}

	sess, pair, err := h.Svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_rejected", "status", 401)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	h.setSessionCookies(c, pair)
	h.publishUserEvent(c, "user_signed_in", sess)

	// session change: refresh the favorites mirror for the new user
	if _, err := h.Favorites.Load(ctx, sess.UserID); err != nil {
		l.Warn("favorites_load_failed", "error", err)
	}

	l.Info("user signed in", "user_id", sess.UserID)
	return c.JSON(http.StatusOK, transport.SessionResponse{
		UserID: sess.UserID.String(),
		Name:   sess.Name,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie(refreshCookie); err == nil {
		if err := h.Svc.SignOut(ctx, ck.Value); err != nil {
			l.Error("logout_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	if sess := SessionFrom(c); sess != nil {
		h.Favorites.Clear(sess.UserID)
	}

	c.SetCookie(deleteCookie(accessCookie, "/"))
	c.SetCookie(deleteCookie(refreshCookie, "/"))

	l.Info("user signed out")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	rck, err := c.Cookie(refreshCookie)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "refresh token missing"})
	}
	access := ""
	if ack, err := c.Cookie(accessCookie); err == nil {
		access = ack.Value
	}

	sess, pair, err := h.Svc.Refresh(ctx, rck.Value, access)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			l.Warn("refresh_rejected", "status", 401)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		l.Error("refresh_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	h.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, transport.SessionResponse{
		UserID: sess.UserID.String(),
		Name:   sess.Name,
	})
}

// Session reads the current session; 204 when nobody is signed in.
func (h *AuthHTTP) Session(c echo.Context) error {
	sess := SessionFrom(c)
	if sess == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, transport.SessionResponse{
		UserID: sess.UserID.String(),
		Name:   sess.Name,
	})
}

func (h *AuthHTTP) setSessionCookies(c echo.Context, pair *service.TokenPair) {
	c.SetCookie(createCookie(accessCookie, pair.Access, "/", pair.AccessExp))
	c.SetCookie(createCookie(refreshCookie, pair.Refresh, "/", pair.RefreshExp))
}

func (h *AuthHTTP) publishUserEvent(c echo.Context, kind string, sess *service.Session) {
	ctx := c.Request().Context()
	event := echo.Map{"type": kind, "user_id": sess.UserID.String()}
	if err := h.Producer.Publish(ctx, events.TopicUserEvents, sess.UserID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicUserEvents, "error", err)
	}
}
