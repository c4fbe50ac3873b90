package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresKV хранит значения в таблице kv_store
type PostgresKV struct {
	pool *pgxpool.Pool
}

var _ KVStore = (*PostgresKV)(nil)

func NewPostgresKV(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{
		pool: pool,
	}
}

// Migrate создает таблицу, если ее еще нет
func (p *PostgresKV) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresSchema)
	return p.mapError(err)
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `
		SELECT value FROM kv_store WHERE key = $1
	`, key).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrorNotFound
	}
	return value, p.mapError(err)
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, string(value))
	return p.mapError(err)
}

func (p *PostgresKV) Close() error {
	p.pool.Close()
	return nil
}

// mapError: битый JSON в колонке jsonb отдаем как ErrorCorrupt
func (p *PostgresKV) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "22P02" {
			return errors.Join(ErrorCorrupt, err)
		}
	}
	return err
}
