package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kgtk-simpanse/internal/adapters/http/middleware"
	"kgtk-simpanse/internal/adapters/http/routes"
	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/adapters/persistence/store"
	"kgtk-simpanse/internal/config"

	"github.com/gofiber/fiber/v2"
)

// @title SIMPANSE API
// @version 1.0
// @description Sistem Peminjaman Aset KGTK Maluku Utara

// @contact.name API Support
// @contact.email kgtkmalut@gmail.com

// @host localhost:3000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the state store
	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open state store: %v", err)
	}

	// Load application state
	state, err := repositories.NewState(st)
	if err != nil {
		log.Fatalf("❌ Failed to load state: %v", err)
	}

	// Seed defaults into an empty store
	if err := config.NewSeeder(state).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed defaults: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SIMPANSE API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (dependency injection happens here)
	reminderService := routes.Setup(app, state, cfg)

	// Start the daily overdue-return reminder (08:30)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder scheduler: %v", err)
	}
	defer reminderService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// openStore selects the state store backend from configuration.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Storage.Driver == "mysql" {
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	}
	return store.NewFileStore(cfg.Storage.FilePath)
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
