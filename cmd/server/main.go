package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/armyblogger/stock-tracker/internal/api"
	"github.com/armyblogger/stock-tracker/internal/apperrors"
	"github.com/armyblogger/stock-tracker/internal/config"
	"github.com/armyblogger/stock-tracker/internal/database"
	"github.com/armyblogger/stock-tracker/internal/finnhub"
	"github.com/armyblogger/stock-tracker/internal/repository"
	"github.com/armyblogger/stock-tracker/internal/scheduler"
	"github.com/armyblogger/stock-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)

	var settingsService *service.SettingsService
	if cfg.Secrets.FernetKey != "" {
		settingsService, err = service.NewSettingsService(settingRepo, cfg.Secrets.FernetKey)
		if err != nil {
			log.Fatalf("Failed to create settings service: %v", err)
		}
	} else {
		log.Println("FERNET_KEY not set; settings API disabled, using FINNHUB_API_KEY from environment")
	}

	// Prefer the environment token; fall back to the stored setting.
	var tokens finnhub.TokenSource
	switch {
	case cfg.Finnhub.Token != "":
		tokens = finnhub.StaticToken(cfg.Finnhub.Token)
	case settingsService != nil:
		tokens = settingsService
	default:
		log.Fatalf("No Finnhub token source: set FINNHUB_API_KEY or FERNET_KEY")
	}

	quoteClient := finnhub.NewClient(cfg.Finnhub.BaseURL, tokens, cfg.Finnhub.Timeout)
	portfolioService := service.NewPortfolioService(snapshotRepo, quoteClient)

	portfolioService.Subscribe(func(e service.Event) {
		log.Printf("portfolio %s %s (%s): %d positions", e.Kind, e.Ticker, e.ID, e.Positions)
	})

	// Restore the portfolio and hydrate quotes before accepting traffic.
	if err := portfolioService.Load(context.Background()); err != nil {
		if errors.Is(err, apperrors.ErrCorruptState) {
			log.Printf("Stored portfolio snapshot is corrupt, starting with an empty portfolio: %v", err)
		} else {
			log.Fatalf("Failed to load portfolio: %v", err)
		}
	}
	log.Printf("Loaded portfolio: %d positions", len(portfolioService.Positions()))

	// Schedule the background quote refresh
	refreshScheduler, err := scheduler.New(cfg.Refresh.Schedule, portfolioService)
	if err != nil {
		log.Fatalf("Failed to create refresh scheduler: %v", err)
	}
	refreshScheduler.Start()
	defer refreshScheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, portfolioService, settingsService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
