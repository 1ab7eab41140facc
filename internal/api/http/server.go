package http

import (
	"github.com/gofiber/fiber/v2"
)

// ServerConfig describes the Fiber application.
type ServerConfig struct {
	AppName   string
	BodyLimit int
}

// NewServer builds a Fiber app with the global middleware chain and routes.
func NewServer(cfg ServerConfig, middleware MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, middleware)
	RegisterRoutes(app, routes)
	return app
}
