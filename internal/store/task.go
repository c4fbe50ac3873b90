// Package store держит канонический список задач в памяти и сквозным образом
// записывает его в хранилище после каждой успешной мутации.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/model"
	"github.com/BuzzLyutic/taskify/internal/repo"
)

type TaskStore struct {
	repo   repo.TaskRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu      sync.RWMutex
	tasks   []model.Task
	loading bool
	lastErr string
}

// State - снимок состояния вместе с транзитными полями
type State struct {
	Tasks   []model.Task `json:"tasks"`
	Loading bool         `json:"isLoading"`
	Error   string       `json:"error,omitempty"`
}

type Option func(*TaskStore)

func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *TaskStore) {
		s.newID = gen
	}
}

// New создает стор и восстанавливает задачи из хранилища. Ошибка загрузки не
// возвращается: в таком случае стор начинает с пустого списка.
func New(ctx context.Context, r repo.TaskRepository, logger *zap.Logger, opts ...Option) *TaskStore {
	s := &TaskStore{
		repo:   r,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.loading = true
	s.hydrate(ctx)
	s.loading = false

	return s
}

func (s *TaskStore) hydrate(ctx context.Context) {
	tasks, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		s.logger.Debug("no persisted tasks, starting empty")
	case err != nil:
		s.logger.Warn("failed to load persisted tasks, starting empty", zap.Error(err))
		tasks = nil
	}

	s.tasks = s.normalize(tasks)
	s.logger.Info("task store ready", zap.Int("tasks", len(s.tasks)))
}

// normalize заполняет значения по умолчанию и выкидывает записи без id и дубли
func (s *TaskStore) normalize(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))

	for _, t := range tasks {
		if t.ID == "" {
			s.logger.Warn("dropping persisted task without id", zap.String("title", t.Title))
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Warn("dropping duplicate persisted task", zap.String("task_id", t.ID))
			continue
		}
		seen[t.ID] = struct{}{}

		if !t.Priority.Valid() {
			t.Priority = model.PriorityLow
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		out = append(out, t)
	}
	return out
}

func (s *TaskStore) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if title == "" || description == "" {
		return model.Task{}, ErrRequired
	}
	priority, err := normalizePriority(in.Priority)
	if err != nil {
		return model.Task{}, err
	}
	if err := validateFields(title, description, priority); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTaken(title, "") {
		return model.Task{}, ErrDuplicateTitle
	}

	now := s.now()
	t := model.Task{
		ID:          s.allocateID(),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tasks = append(s.tasks, t)
	s.persist(ctx)

	return t, nil
}

// EditTask сливает непустые поля правки в задачу. Уникальность названия и длины
// здесь не проверяются, для этого есть ValidateEdit.
func (s *TaskStore) EditTask(ctx context.Context, id string, edit model.TaskEdit) (model.Task, error) {
	var priority model.Priority
	if edit.Priority != nil {
		p, err := normalizePriority(*edit.Priority)
		if err != nil {
			return model.Task{}, err
		}
		priority = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn("task not found", zap.String("op", "edit"), zap.String("task_id", id))
		return model.Task{}, ErrNotFound
	}

	t := s.tasks[idx]
	if edit.Title != nil {
		t.Title = strings.TrimSpace(*edit.Title)
	}
	if edit.Description != nil {
		t.Description = strings.TrimSpace(*edit.Description)
	}
	if edit.Priority != nil {
		t.Priority = priority
	}
	t.UpdatedAt = s.stamp(t.UpdatedAt)

	s.tasks[idx] = t
	s.persist(ctx)

	return t, nil
}

// ValidateEdit проверяет правку так же, как создание: обязательные поля, длины,
// приоритет и уникальность названия среди остальных задач.
func (s *TaskStore) ValidateEdit(id string, edit model.TaskEdit) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	t := s.tasks[idx]
	title, description, priority := t.Title, t.Description, t.Priority
	if edit.Title != nil {
		title = strings.TrimSpace(*edit.Title)
	}
	if edit.Description != nil {
		description = strings.TrimSpace(*edit.Description)
	}
	if edit.Priority != nil {
		p, err := normalizePriority(*edit.Priority)
		if err != nil {
			return err
		}
		priority = p
	}

	if err := validateFields(title, description, priority); err != nil {
		return err
	}
	if s.titleTaken(title, id) {
		return ErrDuplicateTitle
	}
	return nil
}

func (s *TaskStore) ToggleTaskStatus(ctx context.Context, id string) (model.Task, error) {
	if strings.TrimSpace(id) == "" {
		s.logger.Error("invalid task id provided", zap.String("op", "toggle"))
		return model.Task{}, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn("task not found", zap.String("op", "toggle"), zap.String("task_id", id))
		return model.Task{}, ErrNotFound
	}

	t := s.tasks[idx]
	t.Completed = !t.Completed
	t.UpdatedAt = s.stamp(t.UpdatedAt)

	s.tasks[idx] = t
	s.persist(ctx)

	return t, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		s.logger.Error("invalid task id provided", zap.String("op", "delete"))
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn("task not found", zap.String("op", "delete"), zap.String("task_id", id))
		return ErrNotFound
	}

	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.persist(ctx)

	return nil
}

// ReorderTasks переносит задачу внутри одной секции (completed или нет) с позиции
// source на позицию destination. Индексы считаются внутри секции. В итоговом
// списке незавершенные всегда идут перед завершенными.
func (s *TaskStore) ReorderTasks(ctx context.Context, source, destination int, completedSection bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	section := make([]model.Task, 0, len(s.tasks))
	rest := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed == completedSection {
			section = append(section, t)
		} else {
			rest = append(rest, t)
		}
	}

	if source < 0 || source >= len(section) || destination < 0 || destination >= len(section) {
		s.logger.Warn("reorder index out of range",
			zap.Int("source", source),
			zap.Int("destination", destination),
			zap.Int("section_len", len(section)),
			zap.Bool("completed", completedSection),
		)
		return ErrIndexOutOfRange
	}

	moved := section[source]
	section = slices.Delete(section, source, source+1)
	section = slices.Insert(section, destination, moved)

	if completedSection {
		s.tasks = append(rest, section...)
	} else {
		s.tasks = append(section, rest...)
	}
	s.persist(ctx)

	return nil
}

// Tasks возвращает копию всего списка в порядке хранения
func (s *TaskStore) Tasks() []model.Task {
	return s.List(model.SectionAll)
}

func (s *TaskStore) CompletedTasks() []model.Task {
	return s.List(model.SectionCompleted)
}

func (s *TaskStore) IncompleteTasks() []model.Task {
	return s.List(model.SectionIncomplete)
}

func (s *TaskStore) List(section model.Section) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if section.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskStore) TaskByID(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *TaskStore) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.Stats{
		Total: len(s.tasks),
		ByPriority: map[model.Priority]int{
			model.PriorityLow:    0,
			model.PriorityMedium: 0,
			model.PriorityHigh:   0,
		},
	}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Incomplete++
		}
		stats.ByPriority[t.Priority]++
	}
	return stats
}

func (s *TaskStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)

	return State{
		Tasks:   tasks,
		Loading: s.loading,
		Error:   s.lastErr,
	}
}

// persist вызывается под s.mu. Ошибка записи только логируется: состояние в
// памяти остается источником истины для текущей сессии.
func (s *TaskStore) persist(ctx context.Context) {
	snapshot := slices.Clone(s.tasks)
	if snapshot == nil {
		snapshot = []model.Task{}
	}

	// отмена запроса не должна обрывать запись уже примененной мутации
	if err := s.repo.Save(context.WithoutCancel(ctx), snapshot); err != nil {
		s.logger.Error("failed to persist tasks", zap.Int("tasks", len(snapshot)), zap.Error(err))
		s.lastErr = err.Error()
		return
	}
	s.lastErr = ""
}

func (s *TaskStore) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool {
		return t.ID == id
	})
}

func (s *TaskStore) titleTaken(title, exceptID string) bool {
	for _, t := range s.tasks {
		if t.ID == exceptID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(t.Title), title) {
			return true
		}
	}
	return false
}

func (s *TaskStore) allocateID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// stamp возвращает время строго больше prev, даже если часы стоят на месте
func (s *TaskStore) stamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
