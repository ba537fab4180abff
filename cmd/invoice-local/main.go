package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"invoice-generator/internal/app"
	"invoice-generator/internal/handlers"
	u "invoice-generator/internal/utils"
)

func main() {
	cfg, err := u.LoadConfig()
	log := u.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	h, err := handlers.NewFromConfig(cfg, log)
	if err != nil {
		log.Fatal("Failed to build invoice handler", "error", err)
	}

	idleConnsClosed := make(chan struct{})
	startServer(app.SetupApp(h, log), cfg, log, idleConnsClosed)
	<-idleConnsClosed
}

// startServer starts the Fiber app and listens for shutdown signals
func startServer(app *fiber.App, cfg u.Config, log *u.Logger, idleConnsClosed chan struct{}) {
	go func() {
		log.Warn("Local gateway listening", "addr", cfg.Server.Host+cfg.Server.Port)
		if err := app.Listen(cfg.Server.Host + cfg.Server.Port); err != nil {
			log.Error("Server error", "error", err)
		}
	}()

	// Listen for OS termination signals
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint
	signal.Stop(sigint)

	log.Warn("Shutdown signal received, closing server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	log.Info("Server stopped cleanly")
}
