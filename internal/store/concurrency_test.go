package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/model"
	"github.com/BuzzLyutic/taskify/internal/repo"
)

func TestConcurrent_SameTitleCreatedOnce(t *testing.T) {
	s := New(context.Background(), repo.NewTaskRepo(repo.NewMemoryKV(), "task-storage"), zap.NewNop())
	ctx := context.Background()

	const goroutines = 10

	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = s.AddTask(ctx, model.TaskInput{
				Title:       "Concurrent Task",
				Description: fmt.Sprintf("attempt %d", idx),
			})
		}(i)
	}
	wg.Wait()

	var created, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateTitle):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, goroutines-1, dup)
	assert.Len(t, s.Tasks(), 1)
}

func TestConcurrent_CreateAndList(t *testing.T) {
	r := repo.NewTaskRepo(repo.NewMemoryKV(), "task-storage")
	s := New(context.Background(), r, zap.NewNop())
	ctx := context.Background()

	const writers = 5
	const readers = 10
	const perWriter = 10

	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.AddTask(ctx, model.TaskInput{
					Title:       fmt.Sprintf("Task %d-%d", w, i),
					Description: "d",
				})
				assert.NoError(t, err)
			}
		}(w)
	}

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = s.List(model.SectionAll)
				_ = s.Stats()
				_ = s.State()
			}
		}()
	}

	wg.Wait()

	assert.Len(t, s.Tasks(), writers*perWriter)

	persisted, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, writers*perWriter)
}

func TestConcurrent_TogglesBalanceOut(t *testing.T) {
	s := New(context.Background(), repo.NewTaskRepo(repo.NewMemoryKV(), "task-storage"), zap.NewNop())
	ctx := context.Background()

	task, err := s.AddTask(ctx, model.TaskInput{Title: "Flip", Description: "d"})
	require.NoError(t, err)

	const toggles = 20

	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleTaskStatus(ctx, task.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, ok := s.TaskByID(task.ID)
	require.True(t, ok)
	assert.False(t, got.Completed, "even number of toggles must leave the task incomplete")
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
}
