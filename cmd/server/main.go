package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/live-gallery/internal/config"
	"github.com/JaimeStill/live-gallery/internal/routes"
	"github.com/JaimeStill/live-gallery/internal/server"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runtime, err := NewRuntime(cfg)
	if err != nil {
		return err
	}

	if err := runtime.Start(); err != nil {
		return err
	}

	domain := NewDomain(runtime)

	router := routes.New(runtime.Logger)
	registerRoutes(router, runtime, domain, cfg)

	handler := buildMiddleware(runtime, cfg).Apply(router.Build())

	srv := server.New(&cfg.Server, handler, runtime.Logger)
	if err := srv.Start(runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		runtime.Lifecycle.WaitForStartup()
		runtime.Logger.Info("all subsystems ready")
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	runtime.Logger.Info("shutdown signal received")
	return runtime.Lifecycle.Shutdown(cfg.Server.ShutdownTimeoutDuration())
}
