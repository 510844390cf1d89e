package main

import (
	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/middleware"
)

// buildMiddleware configures the middleware stack applied to every
// request.
func buildMiddleware(runtime *Runtime, cfg *config.Config) *middleware.System {
	sys := middleware.New()
	sys.Use(middleware.TrimSlash())
	sys.Use(middleware.Logger(runtime.Logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	return sys
}
