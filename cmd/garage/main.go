// Package main запускает HTTP-сервер умной гаражной системы.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/garage-system/internal/config"
	"github.com/mmeshcher/garage-system/internal/handler"
	"github.com/mmeshcher/garage-system/internal/repository"
	"github.com/mmeshcher/garage-system/internal/service"
	"github.com/mmeshcher/garage-system/internal/weather"
)

const reminderScanInterval = 1 * time.Hour

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	store, err := newSnapshotStore(cfg, sugar)
	if err != nil {
		sugar.Fatalw("snapshot store initialization error", "error", err.Error())
	}

	var weatherClient *weather.Client
	if cfg.WeatherAPIKey != "" {
		weatherClient = weather.NewClient(cfg.WeatherAddress, cfg.WeatherAPIKey)
	} else {
		sugar.Warn("weather API key is not set, forecast proxy is disabled")
	}

	svc := service.NewService(store, logger)
	defer svc.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Restore(startupCtx); err != nil {
		sugar.Errorw("fleet restore error", "error", err.Error())
	}
	cancelStartup()

	h := handler.NewHandler(svc, weatherClient, logger)
	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск фонового сканирования напоминаний об обслуживании
	g.Go(func() error {
		svc.StartReminderScans(ctx, reminderScanInterval)
		return nil
	})

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting garage server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// Приоритет хранилищ: Redis, затем PostgreSQL, иначе память процесса.
func newSnapshotStore(cfg *config.Config, sugar *zap.SugaredLogger) (service.SnapshotStore, error) {
	switch {
	case cfg.RedisAddress != "":
		return repository.NewRedisStore(cfg.RedisAddress)
	case cfg.DatabaseURI != "":
		return repository.NewPostgresStore(cfg.DatabaseURI)
	default:
		sugar.Warn("no storage configured, fleet snapshots will not survive restarts")
		return repository.NewMemoryStore(), nil
	}
}
