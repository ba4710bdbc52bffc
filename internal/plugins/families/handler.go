package families

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/plugins/auth"
)

// Handler holds the HTTP handlers for family endpoints.
type Handler struct {
	service FamilyService
}

// NewHandler creates a new family handler.
func NewHandler(service FamilyService) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/families. Returns the caller's families.
func (h *Handler) List(c echo.Context) error {
	opts := DefaultListOptions()
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		opts.Page = page
	}

	families, total, err := h.service.List(c.Request().Context(), auth.GetUserID(c), opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"families": families,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}

// Create handles POST /api/v1/families.
func (h *Handler) Create(c echo.Context) error {
	var req CreateFamilyRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	family, err := h.service.Create(c.Request().Context(), auth.GetUserID(c), CreateFamilyInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, family)
}

// Get handles GET /api/v1/families/:familyID.
func (h *Handler) Get(c echo.Context) error {
	fc := GetFamilyContext(c)
	return c.JSON(http.StatusOK, map[string]any{
		"family": fc.Family,
		"role":   fc.MemberRole.String(),
	})
}

// Update handles PUT /api/v1/families/:familyID. Owner only.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateFamilyRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	family, err := h.service.Update(c.Request().Context(), c.Param("familyID"), UpdateFamilyInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, family)
}

// Delete handles DELETE /api/v1/families/:familyID. Owner only.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("familyID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Membership ---

// ListMembers handles GET /api/v1/families/:familyID/members.
func (h *Handler) ListMembers(c echo.Context) error {
	members, err := h.service.ListMembers(c.Request().Context(), c.Param("familyID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

// RemoveMember handles DELETE /api/v1/families/:familyID/members/:userID. Owner only.
func (h *Handler) RemoveMember(c echo.Context) error {
	if err := h.service.RemoveMember(c.Request().Context(), c.Param("familyID"), c.Param("userID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateMemberRole handles PUT /api/v1/families/:familyID/members/:userID/role. Owner only.
func (h *Handler) UpdateMemberRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	role := RoleFromString(req.Role)
	if err := h.service.UpdateMemberRole(c.Request().Context(), c.Param("familyID"), c.Param("userID"), role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Invites ---

// CreateInvite handles POST /api/v1/families/:familyID/invites. Owner only.
func (h *Handler) CreateInvite(c echo.Context) error {
	var req CreateInviteRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	invite, err := h.service.CreateInvite(
		c.Request().Context(),
		c.Param("familyID"),
		auth.GetUserID(c),
		req.Email,
		RoleFromString(req.Role),
	)
	if err != nil {
		return err
	}

	// The token is returned once, here, so the owner can share it. It is
	// never exposed again through list endpoints.
	return c.JSON(http.StatusCreated, map[string]any{
		"invite": invite,
		"token":  invite.Token,
	})
}

// ListInvites handles GET /api/v1/families/:familyID/invites. Owner only.
func (h *Handler) ListInvites(c echo.Context) error {
	invites, err := h.service.ListInvites(c.Request().Context(), c.Param("familyID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"invites": invites})
}

// RevokeInvite handles DELETE /api/v1/families/:familyID/invites/:inviteID. Owner only.
func (h *Handler) RevokeInvite(c echo.Context) error {
	if err := h.service.RevokeInvite(c.Request().Context(), c.Param("familyID"), c.Param("inviteID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AcceptInvite handles POST /api/v1/invites/accept. Not family-scoped: the
// caller isn't a member yet, so RequireFamilyAccess cannot apply.
func (h *Handler) AcceptInvite(c echo.Context) error {
	var req AcceptInviteRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if req.Token == "" {
		return apperror.NewBadRequest("invite token is required")
	}

	family, err := h.service.AcceptInvite(c.Request().Context(), req.Token, auth.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, family)
}
