package members

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/apperror"
)

// birthdateLayout is the expected wire format for birthdates.
const birthdateLayout = "2006-01-02"

// Handler holds the HTTP handlers for member endpoints.
type Handler struct {
	service MemberService
}

// NewHandler creates a new member handler.
func NewHandler(service MemberService) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/families/:familyID/profiles.
func (h *Handler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context(), c.Param("familyID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

// Get handles GET /api/v1/families/:familyID/profiles/:memberID.
func (h *Handler) Get(c echo.Context) error {
	member, err := h.service.Get(c.Request().Context(), c.Param("familyID"), c.Param("memberID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Create handles POST /api/v1/families/:familyID/profiles. Adult+.
func (h *Handler) Create(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return err
	}

	member, err := h.service.Create(c.Request().Context(), c.Param("familyID"), CreateMemberInput{
		DisplayName: req.DisplayName,
		UserID:      req.UserID,
		Birthdate:   birthdate,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, member)
}

// Update handles PUT /api/v1/families/:familyID/profiles/:memberID. Adult+.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return err
	}

	member, err := h.service.Update(c.Request().Context(), c.Param("familyID"), c.Param("memberID"), UpdateMemberInput{
		DisplayName: req.DisplayName,
		UserID:      req.UserID,
		Birthdate:   birthdate,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, member)
}

// Delete handles DELETE /api/v1/families/:familyID/profiles/:memberID. Adult+.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("familyID"), c.Param("memberID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseBirthdate parses an optional "2006-01-02" date string.
func parseBirthdate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthdateLayout, s)
	if err != nil {
		return nil, apperror.NewValidation("birthdate must be in YYYY-MM-DD format")
	}
	return &t, nil
}
