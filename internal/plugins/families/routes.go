package families

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/middleware"
	"github.com/keyxmakerx/hearth/internal/plugins/auth"
)

// RegisterRoutes wires the family endpoints into the API group. All routes
// require authentication; family-scoped routes additionally resolve
// membership via RequireFamilyAccess.
func RegisterRoutes(api *echo.Group, handler *Handler, service FamilyService, authService auth.AuthService) {
	authed := api.Group("", auth.RequireAuth(authService))

	authed.GET("/families", handler.List)
	authed.POST("/families", handler.Create)

	// Invite acceptance happens before membership exists.
	authed.POST("/invites/accept", handler.AcceptInvite, middleware.RateLimit(10, time.Minute))

	family := authed.Group("/families/:familyID", RequireFamilyAccess(service))

	family.GET("", handler.Get)
	family.PUT("", handler.Update, RequireRole(RoleOwner))
	family.DELETE("", handler.Delete, RequireRole(RoleOwner))

	family.GET("/members", handler.ListMembers)
	family.DELETE("/members/:userID", handler.RemoveMember, RequireRole(RoleOwner))
	family.PUT("/members/:userID/role", handler.UpdateMemberRole, RequireRole(RoleOwner))

	family.POST("/invites", handler.CreateInvite, RequireRole(RoleOwner))
	family.GET("/invites", handler.ListInvites, RequireRole(RoleOwner))
	family.DELETE("/invites/:inviteID", handler.RevokeInvite, RequireRole(RoleOwner))
}
