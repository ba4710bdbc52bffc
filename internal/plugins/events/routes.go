package events

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/plugins/auth"
	"github.com/keyxmakerx/hearth/internal/plugins/families"
)

// RegisterRoutes wires the event endpoints into the API group. All routes
// are family-scoped: reads need any membership, writes need Adult or better.
func RegisterRoutes(api *echo.Group, handler *Handler, familyService families.FamilyService, authService auth.AuthService) {
	group := api.Group("/families/:familyID/events",
		auth.RequireAuth(authService),
		families.RequireFamilyAccess(familyService),
	)

	group.GET("", handler.List)
	group.GET("/export.ics", handler.Export)
	group.GET("/:eventID", handler.Get)
	group.POST("", handler.Create, families.RequireRole(families.RoleAdult))
	group.PUT("/:eventID", handler.Update, families.RequireRole(families.RoleAdult))
	group.DELETE("/:eventID", handler.Delete, families.RequireRole(families.RoleAdult))
}
