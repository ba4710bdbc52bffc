package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hearth/internal/plugins/auth"
	"github.com/keyxmakerx/hearth/internal/plugins/events"
	"github.com/keyxmakerx/hearth/internal/plugins/families"
	"github.com/keyxmakerx/hearth/internal/plugins/members"
)

// RegisterRoutes constructs every plugin's repository/service/handler chain
// and mounts the routes under /api/v1. This is the single place where the
// dependency graph is assembled.
func (a *App) RegisterRoutes() {
	api := a.Echo.Group("/api/v1")

	// Health check for container orchestration.
	a.Echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Auth ---
	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, a.Redis, a.Config.Auth.SessionTTL)
	authHandler := auth.NewHandler(authService, a.Config.Auth.SessionTTL, !a.Config.IsDevelopment())
	auth.RegisterRoutes(api, authHandler, authService)

	// --- Member profiles ---
	// Built before families: invite redemption provisions a profile through
	// the JoinProfileAdapter.
	memberRepo := members.NewMemberRepository(a.DB)
	memberService := members.NewMemberService(memberRepo)

	// --- Families ---
	familyRepo := families.NewFamilyRepository(a.DB)
	userFinder := families.NewUserFinderAdapter(userRepo)
	joinProfiles := members.NewJoinProfileAdapter(memberService)
	familyService := families.NewFamilyService(familyRepo, userFinder, joinProfiles, a.Config.Invites.TTL)
	familyHandler := families.NewHandler(familyService)
	families.RegisterRoutes(api, familyHandler, familyService, authService)

	memberHandler := members.NewHandler(memberService)
	members.RegisterRoutes(api, memberHandler, familyService, authService)

	// --- Events ---
	eventRepo := events.NewEventRepository(a.DB)
	memberDirectory := events.NewMemberDirectoryAdapter(memberService)
	eventService := events.NewEventService(eventRepo, memberDirectory)
	eventHandler := events.NewHandler(eventService)
	events.RegisterRoutes(api, eventHandler, familyService, authService)
}
