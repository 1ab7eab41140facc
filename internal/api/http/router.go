package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Complaints     *handlers.ComplaintsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
	// RequireToken puts the complaint, user and upload routes behind
	// AuthMiddleware.
	RequireToken bool
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	var guard []fiber.Handler
	if cfg.RequireToken && cfg.AuthMiddleware != nil {
		guard = append(guard, cfg.AuthMiddleware.Handle)
	}

	complaints := api.Group("/complaints", guard...)
	complaints.Get("/", cfg.Complaints.ListComplaints)
	complaints.Post("/", cfg.Complaints.CreateComplaint)
	complaints.Get("/:id", cfg.Complaints.GetComplaint)
	complaints.Delete("/:id", cfg.Complaints.DeleteComplaint)

	users := api.Group("/users", guard...)
	users.Get("/", cfg.Users.List)

	uploads := app.Group("/uploads", guard...)
	uploads.Get("/:name", cfg.Complaints.ServeAttachment)
}
