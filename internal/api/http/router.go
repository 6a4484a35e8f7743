package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/suggestion-box/internal/api/http/handlers"
	"github.com/spec-kit/suggestion-box/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Suggestions    *handlers.SuggestionsHandler
	Roadmap        *handlers.RoadmapHandler
	Users          *handlers.UsersHandler
	Tags           *handlers.TagsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role checks belong here, not in the
// domain services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Post("/auth/password/change", cfg.Auth.ChangePassword)

	authed.Get("/suggestions", cfg.Suggestions.List)
	authed.Post("/suggestions", cfg.Suggestions.Create)
	authed.Get("/suggestions/:id", cfg.Suggestions.Get)
	authed.Patch("/suggestions/:id", cfg.Suggestions.Update)
	authed.Post("/suggestions/:id/votes", cfg.Suggestions.SubmitVote)

	authed.Get("/roadmap-items", cfg.Roadmap.List)
	authed.Get("/roadmap-items/:id", cfg.Roadmap.Get)

	authed.Get("/tags", cfg.Tags.List)
	authed.Get("/tags/top", cfg.Tags.Top)

	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Delete("/suggestions/:id", cfg.Suggestions.Delete)
	admin.Post("/suggestions/:id/vote-session/start", cfg.Suggestions.StartVoteSession)
	admin.Post("/suggestions/:id/vote-session/stop", cfg.Suggestions.StopVoteSession)

	admin.Post("/roadmap-items", cfg.Roadmap.Create)
	admin.Patch("/roadmap-items/:id", cfg.Roadmap.Update)
	admin.Delete("/roadmap-items/:id", cfg.Roadmap.Delete)

	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Patch("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Delete)
}
