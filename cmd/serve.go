package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"sync-documenter/core/config"
	"sync-documenter/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveDir string

// serveCmd serves the generated report directory over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated report over HTTP",
	Long:  `Starts a small HTTP server exposing the report output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		dir := serveDir
		if dir == "" {
			dir = cfg.Report.OutputDir
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Request id first so every log line can be correlated.
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("request_id", uuid.NewString())
			return c.Next()
		})

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRequestID(logg, c)
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

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		app.Static("/", dir, fiber.Static{Index: "report.html"})

		go func() {
			logg.Info("Report viewer listening",
				zap.String("port", cfg.Viewer.Port),
				zap.String("dir", dir),
			)
			if err := app.Listen(":" + cfg.Viewer.Port); err != nil {
				logg.Fatal("Server stopped", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logg.Info("Shutting down")
		_ = app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "Directory to serve (defaults to report.output_dir)")
	RootCmd.AddCommand(serveCmd)
}
