package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vraj209/peaknorth-blog-api/app/api"
	"github.com/Vraj209/peaknorth-blog-api/app/blog"
	"github.com/Vraj209/peaknorth-blog-api/app/cfg"
	"github.com/Vraj209/peaknorth-blog-api/app/docstore"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting PeakNorth Blog API (version %s)...", appConfig.Version)

	// Document store connection
	log.Printf("Opening document store (driver: %s)...", appConfig.StoreDriver)
	store, err := docstore.Open(context.Background(), docstore.Options{
		Driver:        appConfig.StoreDriver,
		SQLitePath:    appConfig.SQLitePath,
		MongoURI:      appConfig.MongoURI,
		MongoDatabase: appConfig.MongoDatabase,
	})
	if err != nil {
		log.Fatal("Failed to open document store: ", err)
	}
	defer store.Close(context.Background())
	log.Printf("Document store ready")

	// Initialize repositories and domain service
	postRepo := blog.NewPostRepository(store)
	ideaRepo := blog.NewIdeaRepository(store)
	settingsRepo := blog.NewSettingsRepository(store)
	service := blog.NewService(postRepo, ideaRepo)

	// Seed cadence settings on first start
	if err := seedCadenceSettings(settingsRepo, appConfig.SettingsFile); err != nil {
		log.Fatal("Failed to seed cadence settings: ", err)
	}

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(postRepo, ideaRepo, settingsRepo, service)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)
		log.Printf("  Posts:         http://localhost:%s/api/posts", appConfig.Port)
		log.Printf("  Ideas:         http://localhost:%s/api/ideas", appConfig.Port)
		log.Printf("  Publish ready: http://localhost:%s/api/publish/ready", appConfig.Port)
		log.Printf("  Stats:         http://localhost:%s/api/publish/stats", appConfig.Port)
		log.Printf("  All /api endpoints require the X-API-Key header")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("PeakNorth Blog API started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("PeakNorth Blog API shutdown complete")
}

// seedCadenceSettings writes the cadence defaults from the optional
// settings file when no cadence document exists yet. An existing document
// always wins over the file.
func seedCadenceSettings(settingsRepo *blog.SettingsRepository, settingsFile string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := settingsRepo.GetCadence(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("Cadence settings: every %d day(s) at %02d:00 %s", existing.IntervalDays, existing.PublishHour, existing.Timezone)
		return nil
	}

	if settingsFile == "" {
		log.Println("Cadence settings not configured yet; set them via PUT /api/settings/cadence")
		return nil
	}

	cadence, err := blog.LoadCadenceDefaults(settingsFile)
	if err != nil {
		return err
	}

	if err := settingsRepo.UpsertCadence(ctx, *cadence); err != nil {
		return err
	}

	log.Printf("Seeded cadence settings from %s: every %d day(s) at %02d:00 %s", settingsFile, cadence.IntervalDays, cadence.PublishHour, cadence.Timezone)
	return nil
}
