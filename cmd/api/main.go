package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"repo-relay/config"
	_ "repo-relay/docs" // Swagger docs
	"repo-relay/internal/delivery"
	"repo-relay/internal/hooksetup"
	"repo-relay/internal/httpserver"
	"repo-relay/internal/render"
	"repo-relay/internal/router"
	"repo-relay/internal/subscription"
	"repo-relay/internal/subscription/repository/sqldb"
	"repo-relay/internal/subscription/usecase"
	"repo-relay/internal/webhook"
	"repo-relay/pkg/log"
	"repo-relay/pkg/shortener"
)

// @title       repo-relay API
// @description Relays GitHub webhook events into subscribed chat channels.
// @version     1
// @host        localhost:3333
// @schemes     http https
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting repo-relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Subscription store
	repo, err := sqldb.Open(ctx, sqldb.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to open subscription store: %v", err)
		return
	}
	defer repo.Close()

	// 4. Link shortener and chat transport
	short := shortener.New(shortener.Options{
		URL:       cfg.Shortener.URL,
		CacheSize: cfg.Shortener.CacheSize,
		CacheTTL:  cfg.Shortener.CacheTTL,
	}, logger)

	sender, closeSender, err := newSender(ctx, cfg.Delivery, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize chat transport: %v", err)
		return
	}
	defer closeSender()
	logger.Infof(ctx, "Chat transport: %s", cfg.Delivery.Transport)

	// 5. Hook setup (optional)
	var authorizer subscription.Authorizer
	var authHandler httpserver.AuthHandler
	setup, err := hooksetup.New(hooksetup.Config{
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		CallbackURL:  cfg.Webhook.CallbackURL(),
		Secret:       cfg.Webhook.Secret,
		APIURL:       cfg.GitHub.APIURL,
	}, short, sender, logger)
	if err != nil {
		if !errors.Is(err, hooksetup.ErrNotConfigured) {
			logger.Errorf(ctx, "Failed to initialize hook setup: %v", err)
			return
		}
		logger.Warn(ctx, "Hook setup skipped: github.client_id or github.client_secret is missing")
	} else {
		authorizer = setup
		authHandler = setup
	}

	// 6. Domain wiring
	subUC := usecase.New(repo, authorizer, logger)
	eventRouter := router.New(subUC, render.NewDefault(short, logger), logger)
	sink := delivery.New(sender, cfg.Delivery.SendTimeout, logger)

	if !cfg.Webhook.Enabled {
		logger.Warn(ctx, "Webhook listener disabled (webhook.enabled=false)")
		<-ctx.Done()
		logger.Info(ctx, "Shutting down")
		return
	}
	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "webhook.secret is empty: deliveries are accepted without signature verification")
	}

	webhookHandler := webhook.NewHandler(eventRouter, sink, webhook.Config{
		Security: webhook.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		},
		MaxBodyBytes: cfg.Webhook.MaxBodyBytes,
		DedupWindow:  cfg.Webhook.DedupWindow,
	}, logger)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Host:            cfg.Webhook.Host,
		Port:            cfg.Webhook.Port,
		Mode:            cfg.Webhook.Mode,
		Environment:     cfg.Environment.Name,
		ReadTimeout:     cfg.Webhook.ReadTimeout,
		ShutdownTimeout: cfg.Webhook.ShutdownTimeout,
		TrustedProxies:  cfg.Webhook.TrustedProxies,
		WebhookPath:     cfg.Webhook.Path,
		WebhookHandler:  webhookHandler,
		AuthHandler:     authHandler,
		SubscriptionUC:  subUC,
		APIToken:        cfg.Webhook.APIToken,
		HelpPrefix:      cfg.Bot.HelpPrefix,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		if !errors.Is(err, httpserver.ErrBind) {
			logger.Errorf(ctx, "Failed to run server: %v", err)
			return
		}
		// The rest of the bot keeps working without incoming webhooks.
		logger.Errorf(ctx, "Webhook listener disabled: %v", err)
		<-ctx.Done()
	}

	logger.Info(ctx, "Server stopped gracefully")
}
