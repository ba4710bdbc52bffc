package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/apperror"
)

// Handler holds the HTTP handlers for auth endpoints.
type Handler struct {
	service    AuthService
	sessionTTL time.Duration
	secure     bool
}

// NewHandler creates a new auth handler. secure controls the Secure flag on
// the session cookie and should be true in production.
func NewHandler(service AuthService, sessionTTL time.Duration, secure bool) *Handler {
	return &Handler{
		service:    service,
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login. On success it sets the session
// cookie and returns the user.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	token, user, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return c.JSON(http.StatusOK, user)
}

// Logout handles POST /api/v1/auth/logout. It destroys the session in Redis
// and clears the cookie. Safe to call without a valid session.
func (h *Handler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.service.DestroySession(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	clearSessionCookie(c)

	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me. Returns the current session's identity.
func (h *Handler) Me(c echo.Context) error {
	session := GetSession(c)
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	return c.JSON(http.StatusOK, session)
}

// setSessionCookie writes the HttpOnly session cookie to the response.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
