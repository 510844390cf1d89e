package main

import (
	"net/http"

	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/lifecycle"
	"github.com/JaimeStill/live-gallery/internal/middleware"
	"github.com/JaimeStill/live-gallery/internal/realtime"
	"github.com/JaimeStill/live-gallery/internal/routes"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r *routes.System, runtime *Runtime, domain *Domain, cfg *config.Config) {
	guard := middleware.NewGuard(runtime.Tokens, runtime.Logger)

	r.RegisterGroup(routes.Group{
		Prefix: cfg.Server.BasePath,
		Children: []routes.Group{
			domain.Users.Handler(guard).Routes(),
			domain.Objects.Handler(guard, cfg.Storage.MaxUploadSizeBytes()).Routes(),
		},
	})

	r.RegisterGroup(realtime.NewHandler(runtime.Hub, runtime.Logger).Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, req *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
	})
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
