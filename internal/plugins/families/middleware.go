package families

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/apperror"
	"github.com/keyxmakerx/hearth/internal/plugins/auth"
)

// contextKeyFamily is the Echo context key for family context data.
const contextKeyFamily = "family_context"

// RequireFamilyAccess returns middleware that resolves the family from the
// :familyID URL parameter and the user's membership role. The resolved
// FamilyContext is injected into the Echo context for downstream handlers.
//
// Behavior:
//   - If the user is a member → MemberRole is set from the family_members row
//   - If the user is NOT a member AND is a site admin → MemberRole = RoleNone,
//     IsSiteAdmin = true (admin actions go through /admin routes)
//   - If the user is NOT a member AND is NOT an admin → 403 Forbidden
//
// Must be applied AFTER auth.RequireAuth.
func RequireFamilyAccess(service FamilyService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			familyID := c.Param("familyID")
			if familyID == "" {
				return apperror.NewBadRequest("family ID is required")
			}

			session := auth.GetSession(c)
			if session == nil {
				return apperror.NewUnauthorized("authentication required")
			}

			family, err := service.GetByID(c.Request().Context(), familyID)
			if err != nil {
				return err
			}

			fc := &FamilyContext{
				Family:      family,
				IsSiteAdmin: session.IsAdmin,
				MemberRole:  RoleNone,
			}

			member, err := service.GetMember(c.Request().Context(), familyID, session.UserID)
			if err == nil {
				fc.MemberRole = member.Role
			} else if !session.IsAdmin {
				return apperror.NewForbidden("you are not a member of this family")
			}

			c.Set(contextKeyFamily, fc)
			return next(c)
		}
	}
}

// RequireRole returns middleware that checks the user's membership role meets
// the minimum required level. Uses MemberRole (not an admin bypass) so that
// admins who haven't joined the family get no calendar access.
//
// Must be applied AFTER RequireFamilyAccess.
func RequireRole(minRole Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fc := GetFamilyContext(c)
			if fc == nil {
				return apperror.NewInternal(
					fmt.Errorf("RequireRole used without RequireFamilyAccess"),
				)
			}

			if fc.MemberRole < minRole {
				return apperror.NewForbidden("insufficient permissions")
			}

			return next(c)
		}
	}
}

// GetFamilyContext retrieves the family context from the Echo context.
// Returns nil if RequireFamilyAccess middleware was not applied.
func GetFamilyContext(c echo.Context) *FamilyContext {
	fc, ok := c.Get(contextKeyFamily).(*FamilyContext)
	if !ok {
		return nil
	}
	return fc
}
