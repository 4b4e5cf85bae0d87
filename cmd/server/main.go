package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"fridgechef/internal/ai"
	"fridgechef/internal/config"
	"fridgechef/internal/db"
	"fridgechef/internal/db/mock"
	applog "fridgechef/internal/log"
	"fridgechef/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

// Indirections keep run testable without touching real infrastructure.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure

	newAIClientFunc = func(cfg config.AIConfig) (*ai.Client, error) {
		return ai.NewClient(ai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	}

	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	if err := godotenv.Load(); err != nil {
		applog.Debug(context.Background(), "no .env file loaded", "error", err)
	}
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	var aiClient *ai.Client
	if strings.TrimSpace(cfg.AI.APIKey) != "" {
		aiClient, err = newAIClientFunc(cfg.AI)
		if err != nil {
			applog.Error(ctx, "failed to configure suggestion client", "error", err)
			return 1
		}
	} else {
		applog.Info(ctx, "OPENAI_API_KEY not set, suggestion endpoints disabled")
	}

	srv, err := newServerFunc(server.Config{
		Addr:     cfg.Server.Addr,
		Database: database,
		AI:       aiClient,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	shutdownCh, cancelSubscription := subscribeShutdownSig()
	defer cancelSubscription()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
	case sig := <-shutdownCh:
		applog.Info(ctx, "shutdown signal received", "signal", sig.String())
		if err := srv.Stop(); err != nil {
			applog.Error(ctx, "graceful shutdown failed", "error", err)
			return 1
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server exited with error", "error", err)
			return 1
		}
	}

	return 0
}
