package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odmap/backend/internal/config"
	"github.com/odmap/backend/internal/delivery/http"
	"github.com/odmap/backend/internal/service"
)

func main() {
	// Configuration
	cfg := config.Load()

	// Dependency Injection: record source behind the day cache
	source, closeSource := service.NewSource(context.Background(), cfg)
	defer closeSource()

	renderSvc := service.NewRenderService(source, cfg.HexResolution)

	// Fiber App
	app := http.NewApp()
	http.SetupRoutes(app, http.NewHandler(renderSvc, source))

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (source=%s)", cfg.Port, cfg.Source)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
