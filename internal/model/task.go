package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority принимает пустую строку как low
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityLow, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task - запись в том виде, в котором она лежит в хранилище
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskInput - данные для создания задачи
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority,omitempty"`
}

// TaskEdit - частичное обновление, nil означает "не менять"
type TaskEdit struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

func (e TaskEdit) Empty() bool {
	return e.Title == nil && e.Description == nil && e.Priority == nil
}

type Section string

const (
	SectionAll        Section = "all"
	SectionCompleted  Section = "completed"
	SectionIncomplete Section = "incomplete"
)

func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case "", SectionAll:
		return SectionAll, nil
	case SectionCompleted, SectionIncomplete:
		return Section(s), nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Match сообщает, относится ли задача к секции
func (s Section) Match(t Task) bool {
	switch s {
	case SectionCompleted:
		return t.Completed
	case SectionIncomplete:
		return !t.Completed
	}
	return true
}

type Stats struct {
	Total      int              `json:"total"`
	Completed  int              `json:"completed"`
	Incomplete int              `json:"incomplete"`
	ByPriority map[Priority]int `json:"by_priority"`
}
