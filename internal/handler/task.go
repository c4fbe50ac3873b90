package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/model"
	"github.com/BuzzLyutic/taskify/internal/store"
	"github.com/BuzzLyutic/taskify/pkg/respond"
)

type TaskHandler struct {
	store  *store.TaskStore
	logger *zap.Logger
}

func NewTaskHandler(s *store.TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		store:  s,
		logger: logger,
	}
}

type reorderRequest struct {
	SourceIndex      *int `json:"sourceIndex"`
	DestinationIndex *int `json:"destinationIndex"`
	Completed        bool `json:"completed"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, err := h.store.AddTask(r.Context(), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID)
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.store.TaskByID(chi.URLParam(r, "id"))
	if !ok {
		h.handleErrors(w, r, store.ErrNotFound)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	section, err := model.ParseSection(r.URL.Query().Get("section"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, r, http.StatusOK, h.store.List(section))
}

// Update проверяет правку так же, как создание, и только потом применяет ее
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.TaskEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.store.ValidateEdit(id, req); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.store.EditTask(r.Context(), id, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.ToggleTaskStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SourceIndex == nil || req.DestinationIndex == nil {
		respond.Error(w, r, http.StatusBadRequest, "sourceIndex and destinationIndex are required")
		return
	}

	if err := h.store.ReorderTasks(r.Context(), *req.SourceIndex, *req.DestinationIndex, req.Completed); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.store.Stats())
}

func (h *TaskHandler) State(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.store.State())
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateTitle):
		respond.Kind(w, r, http.StatusConflict, "duplicate_title", err.Error())
	case errors.Is(err, store.ErrValidation):
		respond.Kind(w, r, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, store.ErrNotFound):
		respond.Kind(w, r, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, store.ErrIndexOutOfRange):
		respond.Kind(w, r, http.StatusBadRequest, "bad_request", err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
