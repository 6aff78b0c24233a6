// Package main runs the static file server: every GET is answered with the
// matching file under PUBLIC_DIR, and "/" with its index.html.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/avissapr/coursework/internal/config"
	"github.com/avissapr/coursework/internal/handlers"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/avissapr/coursework/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger := logging.NewLogger().With("fileserver")

	cfg, err := config.LoadFileServer()
	if err != nil {
		logger.Critical("Failed to load configuration", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Get("/*", handlers.NewStaticHandler(cfg.PublicDir, logger).Serve)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.Infof("Serving %s on :%s", cfg.PublicDir, cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Critical("File server stopped", err)
		os.Exit(1)
	}
}
