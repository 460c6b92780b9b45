package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/service"
)

const (
	sessionKey   = "session"
	cartOwnerKey = "cart_owner"
)

type AuthMiddleware struct {
	Svc *service.AuthService
}

// Optional attaches the session to the context when a valid access cookie is
// present and lets the request through either way.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(accessCookie); err == nil {
			if sess, err := m.Svc.SessionFromAccess(ck.Value); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		return next(c)
	}
}

// RequireLogin rejects requests that carry no valid access cookie.
func (m *AuthMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(accessCookie)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "sign_in_required")
		}
		sess, err := m.Svc.SessionFromAccess(ck.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "sign_in_required")
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

// SessionFrom returns the authenticated session or nil.
func SessionFrom(c echo.Context) *service.Session {
	if v := c.Get(sessionKey); v != nil {
		if sess, ok := v.(*service.Session); ok {
			return sess
		}
	}
	return nil
}

// CartOwner assigns every browsing context a stable cart id cookie; the cart
// needs no sign-in.
func CartOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(cartCookie); err == nil && ck.Value != "" {
			c.Set(cartOwnerKey, ck.Value)
			return next(c)
		}
		id := uuid.NewString()
		c.SetCookie(createCookie(cartCookie, id, "/", time.Now().Add(365*24*time.Hour)))
		c.Set(cartOwnerKey, id)
		return next(c)
	}
}

func cartOwnerFrom(c echo.Context) string {
	if v := c.Get(cartOwnerKey); v != nil {
		if owner, ok := v.(string); ok {
			return owner
		}
	}
	return ""
}

// RequestLogger binds a request-scoped logger into the context and writes one
// line per request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)

			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"url", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)
			status := c.Response().Status

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
