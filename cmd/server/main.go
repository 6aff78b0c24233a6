// Package main is the entry point for the coursework CRUD application.
// It loads configuration, connects to PostgreSQL, applies migrations and serves
// the roles, employees, projects and things resources over Fiber.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avissapr/coursework/internal/config"
	"github.com/avissapr/coursework/internal/database"
	"github.com/avissapr/coursework/internal/handlers"
	"github.com/avissapr/coursework/internal/logging"
	"github.com/avissapr/coursework/internal/middleware"
	"github.com/avissapr/coursework/internal/services"
	"github.com/avissapr/coursework/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	migrateCmd := flag.String("migrate", "", `run a migration command and exit: "up", "down" or "version"`)
	flag.Parse()

	logger := logging.NewLogger().With("server")

	cfg, err := config.LoadServer()
	if err != nil {
		logger.Critical("Failed to load configuration", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrateCommand(*migrateCmd, cfg.DatabaseURL, logger); err != nil {
			logger.Critical("Migration command failed", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Critical("Server stopped", err)
		os.Exit(1)
	}
}

func run(cfg *config.Server, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool
	if err := database.Connect(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	if cfg.AutoMigrate {
		result, err := database.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		logger.Event(logging.EventMigrationsApplied, map[string]interface{}{
			"version": result.Version,
			"applied": result.Applied,
			"forced":  result.Forced,
		})
	}

	// Templates are re-read from disk on every render outside production
	app := fiber.New(fiber.Config{
		Views:        web.Engine(!cfg.IsProduction(), "./web/templates"),
		ViewsLayout:  web.Layout,
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	var limiter *middleware.RateLimiter
	if cfg.WriteBurst > 0 {
		limiter = middleware.NewRateLimiter(cfg.WriteBurst, cfg.WriteRefill)
		defer limiter.Stop()
	}

	// Panic recovery sits inside the request logger so a panicking request
	// still gets its access line with the final 500
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(middleware.SecureHeaders(cfg.IsProduction()))
	app.Use(middleware.WriteThrottle(limiter, logger))

	handlers.RegisterRoutes(app, services.NewRosterService(logger), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on :%s (%s)", cfg.Port, cfg.Env)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	}
}

func runMigrateCommand(cmd, dbURL string, logger *logging.Logger) error {
	switch cmd {
	case "up":
		result, err := database.RunMigrations(dbURL)
		if err != nil {
			return err
		}
		logger.Event(logging.EventMigrationsApplied, map[string]interface{}{
			"version": result.Version,
			"applied": result.Applied,
			"forced":  result.Forced,
		})
	case "down":
		if err := database.RollbackMigration(dbURL); err != nil {
			return err
		}
		logger.Info("Rolled back one migration")
	case "version":
		version, dirty, err := database.GetMigrationVersion(dbURL)
		if err != nil {
			return err
		}
		logger.Infof("Schema version %d (dirty: %t)", version, dirty)
	default:
		return errors.New(`unknown migrate command, want "up", "down" or "version"`)
	}
	return nil
}
