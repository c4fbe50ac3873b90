package repo

import (
	"context"

	"github.com/BuzzLyutic/taskify/internal/model"
)

// TaskRepository - порт сохранения: целиком загрузить и целиком записать список задач
type TaskRepository interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// KVStore - локальное key-value хранилище, аналог localStorage
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
