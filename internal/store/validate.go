package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BuzzLyutic/taskify/internal/model"
)

const (
	MaxTitleLength      = 100 // символов
	MaxDescriptionWords = 100 // слов через пробел
)

var (
	ErrValidation = errors.New("validation error")

	ErrRequired           = fmt.Errorf("%w: title and description are required", ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("%w: description must be at most %d words", ErrValidation, MaxDescriptionWords)
	ErrInvalidPriority    = fmt.Errorf("%w: priority must be one of low, medium, high", ErrValidation)
	ErrDuplicateTitle     = fmt.Errorf("%w: a task with this title already exists", ErrValidation)

	ErrNotFound        = errors.New("task not found")
	ErrInvalidID       = errors.New("invalid task id")
	ErrIndexOutOfRange = errors.New("index out of range")
)

func validateFields(title, description string, priority model.Priority) error {
	if title == "" || description == "" {
		return ErrRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(strings.Fields(description)) > MaxDescriptionWords {
		return ErrDescriptionTooLong
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// normalizePriority: пустой приоритет становится low
func normalizePriority(p model.Priority) (model.Priority, error) {
	parsed, err := model.ParsePriority(string(p))
	if err != nil {
		return "", ErrInvalidPriority
	}
	return parsed, nil
}
