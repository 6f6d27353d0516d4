package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazid79/MemoraTodoApp/api"
	"github.com/mazid79/MemoraTodoApp/config"
	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks"
	"github.com/mazid79/MemoraTodoApp/tasks/notify"
	"github.com/mazid79/MemoraTodoApp/tasks/persist"
	"github.com/mazid79/MemoraTodoApp/tasks/store"
)

type discardSyncer struct{}

func (discardSyncer) Enqueue(list []tasks.Task) {}

func newTestRouter(t *testing.T) (http.Handler, *store.TaskStore) {
	t.Helper()

	lg := logger.New("ERROR", io.Discard)
	scheduler := notify.NewScheduler(notify.NewNoopGateway(), lg)

	st, err := store.New(context.Background(), persist.NewMemoryGateway(), scheduler, discardSyncer{}, lg)
	require.NoError(t, err)

	cfg := &config.Config{Storage: config.StorageMemory, Version: "test"}
	return api.NewRouter(st, cfg, lg), st
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAddTaskHandler(t *testing.T) {
	router, st := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks",
		`{"title": "Buy milk", "dueDate": "2025-06-01T09:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2025-06-01T09:00:00Z", created.DueDate.Format(time.RFC3339))

	_, ok := st.Task(created.ID)
	assert.True(t, ok)
}

func TestAddTaskHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty title", body: `{"title": ""}`},
		{name: "whitespace title", body: `{"title": "   "}`},
		{name: "missing title", body: `{}`},
		{name: "invalid json", body: `{"title": `},
		{name: "bad due date", body: `{"title": "x", "dueDate": "tomorrow"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, st := newTestRouter(t)

			rec := doRequest(t, router, http.MethodPost, "/api/tasks", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation")
			assert.Empty(t, st.Tasks())
		})
	}
}

func TestAddTaskHandler_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"title": "` + strings.Repeat("x", 70*1024) + `"}`
	rec := doRequest(t, router, http.MethodPost, "/api/tasks", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body too large")
}

func TestSnapshotHandler(t *testing.T) {
	router, st := newTestRouter(t)
	ctx := context.Background()

	a := st.AddTask(ctx, "done", nil)
	st.AddTask(ctx, "pending", nil)
	st.ToggleTask(ctx, a.ID)

	rec := doRequest(t, router, http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Tasks    []tasks.Task `json:"tasks"`
		Theme    tasks.Theme  `json:"theme"`
		Progress float64      `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Tasks, 2)
	assert.Equal(t, tasks.ThemeLight, got.Theme)
	assert.InDelta(t, 0.5, got.Progress, 0.0001)
}

func TestToggleTaskHandler(t *testing.T) {
	router, st := newTestRouter(t)

	created := st.AddTask(context.Background(), "Buy milk", nil)

	rec := doRequest(t, router, http.MethodPost, "/api/tasks/"+created.ID+"/toggle", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Completed)
}

func TestEditTaskHandler(t *testing.T) {
	router, st := newTestRouter(t)

	created := st.AddTask(context.Background(), "old", nil)

	rec := doRequest(t, router, http.MethodPut, "/api/tasks/"+created.ID,
		`{"title": "new", "dueDate": "2025-06-01T09:00:00Z"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got tasks.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "new", got.Title)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-06-01T09:00:00Z", got.DueDate.Format(time.RFC3339))
}

func TestDeleteTaskHandler(t *testing.T) {
	router, st := newTestRouter(t)

	created := st.AddTask(context.Background(), "Buy milk", nil)

	rec := doRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, st.Tasks())
}

func TestTaskHandlers_UnknownID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "toggle", method: http.MethodPost, path: "/api/tasks/nope/toggle"},
		{name: "edit", method: http.MethodPut, path: "/api/tasks/nope", body: `{"title": "x"}`},
		{name: "delete", method: http.MethodDelete, path: "/api/tasks/nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)

			rec := doRequest(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "not_found")
		})
	}
}

func TestToggleThemeHandler(t *testing.T) {
	router, st := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/theme/toggle", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"theme":"dark"`)
	assert.Equal(t, tasks.ThemeDark, st.Theme())
}

func TestHealthHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, config.StorageMemory, got.Storage)
	assert.Equal(t, "test", got.Version)
	assert.NotEmpty(t, got.Uptime)
}
