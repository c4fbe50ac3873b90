// Package app собирает хранилище, стор и HTTP-сервер из конфигурации.
// Используется и сервером (cmd/app), и CLI (cmd/taskify).
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BuzzLyutic/taskify/internal/config"
	"github.com/BuzzLyutic/taskify/internal/handler"
	"github.com/BuzzLyutic/taskify/internal/repo"
	"github.com/BuzzLyutic/taskify/internal/store"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config config.Config
	Logger *zap.Logger
	Store  *store.TaskStore

	kv repo.KVStore
}

// New открывает backend из cfg.Storage и восстанавливает стор
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	kv, err := repo.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("storage opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("key", cfg.Storage.Key),
	)

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  store.New(ctx, repo.NewTaskRepo(kv, cfg.Storage.Key), logger),
		kv:     kv,
	}, nil
}

func (a *App) Handler() http.Handler {
	return handler.NewRouter(handler.NewTaskHandler(a.Store, a.Logger))
}

// Serve слушает cfg.Port, пока ctx не отменен, затем корректно останавливает сервер
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}

func (a *App) Close() error {
	return a.kv.Close()
}

// NewLogger строит production- или development-логгер zap с заданным уровнем
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
