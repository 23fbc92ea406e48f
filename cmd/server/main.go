package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/config"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/database"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/email"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/handler"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/logger"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/middleware"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/moderation"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/repository"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/router"
	"github.com/JacksonJohnAllanChambers/StillGrateful/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting StillGrateful relay")

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Initialize repositories
	rateLimitRepo := repository.NewRateLimitRepository(db, cfg.Relay.Window, cfg.Relay.Cap)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize content filter
	var classifier moderation.Classifier
	switch cfg.Moderation.Provider {
	case "gemini":
		classifier = moderation.NewGeminiClassifier(cfg.Moderation)
		log.Info().Str("model", cfg.Moderation.Model).Bool("fail_open", cfg.Moderation.FailOpen).Msg("content filter initialized")
	case "none":
		log.Warn().Msg("content filtering disabled, all messages will be delivered")
	default:
		log.Fatal().Str("provider", cfg.Moderation.Provider).Msg("unknown moderation provider")
	}
	filter := moderation.NewFilter(classifier, cfg.Moderation.FailOpen, log)

	// Initialize email sender
	sender, err := newSender(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email sender")
	}
	log.Info().Str("provider", cfg.Email.Provider).Msg("email sender initialized")

	// Initialize the relay pipeline
	relaySvc := service.NewRelayService(rateLimitRepo, auditRepo, filter, sender, cfg, log)

	// Initialize handlers
	h := handler.New(db, rdb, log, cfg, relaySvc)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newSender picks the email provider from config.
func newSender(cfg *config.Config) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "resend":
		return email.NewResendSender(email.ResendConfig{
			APIKey:      cfg.Email.Resend.APIKey,
			BaseURL:     cfg.Email.Resend.BaseURL,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
	case "gmail":
		gm := cfg.Email.Gmail
		if gm.CredentialsJSON != "" {
			return email.NewGmailSender(context.Background(), email.GmailConfig{
				CredentialsJSON: gm.CredentialsJSON,
				SenderAddress:   cfg.Email.FromAddress,
				SenderName:      cfg.Email.FromName,
			})
		}
		return email.NewGmailSenderWithToken(context.Background(),
			gm.ClientID, gm.ClientSecret, gm.RefreshToken,
			cfg.Email.FromAddress, cfg.Email.FromName)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
