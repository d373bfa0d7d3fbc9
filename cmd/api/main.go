package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/onnise/beyond-ads-scraper/internal/auth"
	"github.com/onnise/beyond-ads-scraper/internal/config"
	"github.com/onnise/beyond-ads-scraper/internal/database"
	"github.com/onnise/beyond-ads-scraper/internal/handler"
	"github.com/onnise/beyond-ads-scraper/internal/logging"
	middlewarepkg "github.com/onnise/beyond-ads-scraper/internal/middleware"
	"github.com/onnise/beyond-ads-scraper/internal/notify"
	"github.com/onnise/beyond-ads-scraper/internal/repository"
	"github.com/onnise/beyond-ads-scraper/internal/router"
	"github.com/onnise/beyond-ads-scraper/internal/scraper"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger().Fatalf("failed to load config: %v", err)
	}
	logger := logging.Configure(cfg.LogLevel, cfg.LogFormat)

	var store repository.RunStore
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.MaxConcurrentRuns+4)
		if err != nil {
			cancel()
			logger.Fatalf("failed to connect database: %v", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			cancel()
			logger.Fatalf("failed to migrate database: %v", err)
		}
		pgStore := repository.NewPGXRunStore(pool)
		interrupted, err := pgStore.FailInterrupted(ctx, time.Now().UTC())
		cancel()
		if err != nil {
			logger.Fatalf("failed to close interrupted runs: %v", err)
		}
		defer pool.Close()
		store = pgStore
		logger.WithField("interrupted_runs", interrupted).Info("using postgres run store")
	} else {
		store = repository.NewMemoryRunStore(cfg.RunTTL)
		logger.WithField("ttl", cfg.RunTTL).Info("using in-memory run store")
	}

	runOpts := []service.RunOption{
		service.WithMaxConcurrentRuns(cfg.MaxConcurrentRuns),
		service.WithRunLogger(logger),
		service.WithScraperOptions(scraper.Options{DebugDir: cfg.Browser.DebugDir, Logger: logger}),
	}
	if cfg.VerifyWebsites {
		runOpts = append(runOpts, service.WithRunWebsiteChecker(service.NewWebsiteChecker(&http.Client{Timeout: 5 * time.Second})))
	}
	if cfg.NotifyURL != "" {
		webhook, err := notify.NewWebhook(nil, cfg.NotifyURL)
		if err != nil {
			logger.Fatalf("failed to configure notifications: %v", err)
		}
		runOpts = append(runOpts, service.WithNotifier(webhook))
	}
	runs := service.NewRunService(store, scraper.NewChromeLauncher(cfg.Browser), runOpts...)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(service.OperatorAccount{
		Email:        cfg.OperatorEmail,
		PasswordHash: cfg.OperatorPasswordHash,
		Role:         auth.RoleAdmin,
	}, jwtManager)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, jwtManager.TTL()),
		Scrape: handler.NewScrapeHandler(runs),
		Prompt: handler.NewPromptSearchHandler(runs, service.NewPromptService(0)),
		Export: handler.NewExportHandler(runs),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	if err := runs.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("runs did not stop in time: %v", err)
	}
}
