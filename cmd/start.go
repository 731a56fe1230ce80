package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"releasedrop/core/loader"
	"releasedrop/core/logger"
	"releasedrop/core/middleware/auth"
	"releasedrop/core/middleware/rayid"

	"releasedrop/feature/artists"
	"releasedrop/feature/integrations"
	"releasedrop/feature/releases"
	"releasedrop/feature/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "releasedrop/docs/swagger"
)

// @title Releasedrop API
// @version 1.0
// @description Tracks new music releases and checks them against Plex and Jellyfin libraries.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the releasedrop server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger, database and media servers
		a, err := bootstrap(context.Background())
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Register Features
		mgr := loader.NewManager()
		mgr.Register(artists.NewFeature(a.artists, logg))
		mgr.Register(releases.NewFeature(a.service, logg))
		mgr.Register(integrations.NewFeature(a.providers, logg))
		mgr.Register(reports.NewFeature(a.reports, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !a.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded",
			zap.Strings("features", mgr.Loaded()),
			zap.Strings("providers", a.service.Providers()),
		)

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
