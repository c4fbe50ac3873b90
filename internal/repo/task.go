package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/taskify/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorCorrupt  = errors.New("corrupt value")
)

// TaskRepo хранит весь список задач одним JSON-массивом под фиксированным ключом
type TaskRepo struct {
	kv  KVStore
	key string
}

var _ TaskRepository = (*TaskRepo)(nil)

func NewTaskRepo(kv KVStore, key string) *TaskRepo {
	return &TaskRepo{
		kv:  kv,
		key: key,
	}
}

func (r *TaskRepo) Key() string {
	return r.key
}

func (r *TaskRepo) Load(ctx context.Context) ([]model.Task, error) {
	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorCorrupt, err)
	}
	return tasks, nil
}

func (r *TaskRepo) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return r.kv.Set(ctx, r.key, data)
}
