package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mazid79/MemoraTodoApp/errors"
	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks"
	"github.com/mazid79/MemoraTodoApp/tasks/store"
)

const maxBodySize = 1024 * 64 // 64 KB

// taskRequest is the payload for creating or editing a task. The due
// date is RFC 3339; omit it for a task without a reminder.
type taskRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// snapshotResponse is the consumer-facing view of store state. Progress
// is derived from the snapshot, never stored.
type snapshotResponse struct {
	Tasks    []tasks.Task `json:"tasks"`
	Theme    tasks.Theme  `json:"theme"`
	Progress float64      `json:"progress"`
}

type themeResponse struct {
	Theme tasks.Theme `json:"theme"`
}

// NewSnapshotHandler returns the full task list, theme, and progress.
func NewSnapshotHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()

		respondJSON(w, http.StatusOK, snapshotResponse{
			Tasks:    snap.Tasks,
			Theme:    snap.Theme,
			Progress: tasks.Progress(snap.Tasks),
		}, lg)
	}
}

// NewAddTaskHandler creates a task from the request payload. Title
// validation lives here: the store itself accepts anything.
func NewAddTaskHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTaskRequest(w, r, lg)
		if !ok {
			return
		}

		created := st.AddTask(r.Context(), req.Title, req.DueDate)
		respondJSON(w, http.StatusCreated, created, lg)
	}
}

// NewToggleTaskHandler flips the completed flag of a task.
func NewToggleTaskHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := st.Task(id); !ok {
			respondWithError(w, errors.NewNotFoundError("task "+id+" not found"), lg)
			return
		}

		st.ToggleTask(r.Context(), id)

		updated, _ := st.Task(id)
		respondJSON(w, http.StatusOK, updated, lg)
	}
}

// NewEditTaskHandler replaces a task's title and due date.
func NewEditTaskHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := st.Task(id); !ok {
			respondWithError(w, errors.NewNotFoundError("task "+id+" not found"), lg)
			return
		}

		req, ok := decodeTaskRequest(w, r, lg)
		if !ok {
			return
		}

		st.EditTask(r.Context(), id, req.Title, req.DueDate)

		updated, _ := st.Task(id)
		respondJSON(w, http.StatusOK, updated, lg)
	}
}

// NewDeleteTaskHandler removes a task.
func NewDeleteTaskHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := st.Task(id); !ok {
			respondWithError(w, errors.NewNotFoundError("task "+id+" not found"), lg)
			return
		}

		st.DeleteTask(r.Context(), id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewToggleThemeHandler flips the theme flag.
func NewToggleThemeHandler(st *store.TaskStore, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st.ToggleTheme()
		respondJSON(w, http.StatusOK, themeResponse{Theme: st.Theme()}, lg)
	}
}

// decodeTaskRequest parses and validates the shared add/edit payload.
// The title is trimmed here before it reaches the store.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request, lg *logger.Logger) (taskRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if strings.Contains(err.Error(), "http: request body too large") {
			respondWithError(w, errors.NewValidationError("request body too large", map[string]any{
				"max_size_bytes": maxBodySize,
			}), lg)
			return taskRequest{}, false
		}

		respondWithError(w, errors.NewValidationError("invalid JSON payload", map[string]any{
			"error": err.Error(),
		}), lg)
		return taskRequest{}, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondWithError(w, errors.NewValidationError("task title is required"), lg)
		return taskRequest{}, false
	}

	return req, true
}
