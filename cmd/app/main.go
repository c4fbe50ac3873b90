package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/app"
	"github.com/BuzzLyutic/taskify/internal/config"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем логгер
	logger, err := app.NewLogger(cfg.LogLevel, false)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Graceful shutdown по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err)) // дальше работать бессмысленно
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
	logger.Info("Server stopped successfully!")
}
