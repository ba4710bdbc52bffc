package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys for values set by the auth middleware.
const (
	// SessionContextKey is the Echo context key holding the *Session.
	SessionContextKey = "session"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "hearth_session"
)

// RequireAuth returns middleware that rejects requests without a valid
// session. On success the session is stored in the Echo context for
// downstream handlers.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			session, err := service.ValidateSession(c.Request().Context(), cookie.Value)
			if err != nil {
				// Clear the stale cookie so clients stop sending it.
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}

			c.Set(SessionContextKey, session)
			return next(c)
		}
	}
}

// RequireAdmin returns middleware that rejects non-admin sessions. It must
// run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if session == nil || !session.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// GetSession retrieves the session from the Echo context. Returns nil if
// no session is present (request did not pass through RequireAuth).
func GetSession(c echo.Context) *Session {
	session, ok := c.Get(SessionContextKey).(*Session)
	if !ok {
		return nil
	}
	return session
}

// GetUserID is a convenience helper returning the authenticated user's ID,
// or the empty string if there is no session.
func GetUserID(c echo.Context) string {
	session := GetSession(c)
	if session == nil {
		return ""
	}
	return session.UserID
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
