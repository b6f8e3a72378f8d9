package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pysugar/gift-relay/internal/browser"
	"github.com/pysugar/gift-relay/internal/config"
	"github.com/pysugar/gift-relay/internal/db"
	"github.com/pysugar/gift-relay/internal/handlers"
	"github.com/pysugar/gift-relay/internal/logging"
	"github.com/pysugar/gift-relay/internal/pipeline"
	"github.com/pysugar/gift-relay/internal/vault"
	"github.com/pysugar/gift-relay/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	key, err := cfg.Key()
	if err != nil {
		log.Fatalf("Failed to load encryption key: %v", err)
	}

	database, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	credVault := vault.New(database, key)
	newDriver := func() (browser.SessionDriver, error) {
		return browser.NewChromeDriver(cfg.Headless)
	}
	taskPipeline := pipeline.New(database, credVault, newDriver, nil)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(logging.RequestID)

	r.Get("/healthz", handlers.HealthHandler())

	r.Route("/api", func(r chi.Router) {
		// Account management
		r.Get("/accounts", handlers.ListAccountsHandler(database))
		r.Get("/accounts/authenticated", handlers.ListAuthenticatedAccountsHandler(database))
		r.Get("/accounts/{id}", handlers.GetAccountHandler(database))
		r.Post("/accounts", handlers.CreateAccountHandler(database, credVault))
		r.Put("/accounts/{id}", handlers.UpdateAccountHandler(database, credVault))
		r.Delete("/accounts/{id}", handlers.DeleteAccountHandler(database))

		// Two-factor provisioning
		r.Post("/accounts/{id}/2fa", handlers.SetupTwoFactorHandler(database))
		r.Delete("/accounts/{id}/2fa", handlers.RemoveTwoFactorHandler(database))

		// Captured sessions
		r.Get("/accounts/{id}/session", handlers.GetSessionHandler(database))
		r.Delete("/accounts/{id}/session", handlers.DeleteSessionHandler(database))

		// On-demand authentication
		r.Post("/accounts/authenticate", handlers.AuthenticateAccountHandler(database, credVault, newDriver))

		// Gift management
		r.Get("/gifts", handlers.ListGiftsHandler(database))
		r.Get("/gifts/{id}", handlers.GetGiftHandler(database))
		r.Post("/gifts", handlers.CreateGiftHandler(database))
		r.Put("/gifts/{id}", handlers.UpdateGiftHandler(database))
		r.Delete("/gifts/{id}", handlers.DeleteGiftHandler(database))

		// Audit log
		r.Get("/logs", handlers.LogsHandler(database))

		// Task trigger
		r.Post("/webhook", handlers.WebhookHandler(taskPipeline))
	})

	server := &http.Server{Addr: cfg.Addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Gift relay %s starting on http://%s", version.Version, cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
