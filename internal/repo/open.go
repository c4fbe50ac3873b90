package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskify/internal/config"
)

// Open выбирает backend по конфигурации
func Open(ctx context.Context, cfg config.Storage) (KVStore, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryKV(), nil
	case "", "file":
		return NewFileKV(cfg.DataDir)
	case "sqlite":
		return OpenSQLiteKV(cfg.SQLitePath)
	case "redis":
		return OpenRedisKV(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		kv := NewPostgresKV(pool)
		if err := kv.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
