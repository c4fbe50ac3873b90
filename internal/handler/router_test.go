package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskify/internal/model"
	"github.com/BuzzLyutic/taskify/internal/repo"
	"github.com/BuzzLyutic/taskify/internal/store"
)

func setupServer(t *testing.T, kv repo.KVStore) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	taskStore := store.New(context.Background(), repo.NewTaskRepo(kv, "task-storage"), logger)
	server := httptest.NewServer(NewRouter(NewTaskHandler(taskStore, logger)))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var rdr *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_HealthCheck(t *testing.T) {
	server := setupServer(t, repo.NewMemoryKV())

	resp := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_FullWorkflow(t *testing.T) {
	server := setupServer(t, repo.NewMemoryKV())
	api := server.URL + "/api/tasks"

	// 1. создаем две задачи
	var first, second model.Task
	resp := doJSON(t, http.MethodPost, api, model.TaskInput{Title: "Write report", Description: "quarterly numbers", Priority: model.PriorityHigh})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))

	resp = doJSON(t, http.MethodPost, api, model.TaskInput{Title: "Buy milk", Description: "two liters"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.Equal(t, model.PriorityLow, second.Priority)

	// 2. тот же заголовок в другом регистре
	resp = doJSON(t, http.MethodPost, api, model.TaskInput{Title: "BUY MILK", Description: "again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// 3. получаем по id
	resp = doJSON(t, http.MethodGet, api+"/"+first.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 4. правим
	resp = doJSON(t, http.MethodPatch, api+"/"+second.ID, map[string]string{"description": "one liter"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&edited))
	assert.Equal(t, "one liter", edited.Description)
	assert.Equal(t, "Buy milk", edited.Title)

	// 5. завершаем первую
	resp = doJSON(t, http.MethodPost, api+"/"+first.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, api+"?section=completed", nil)
	var completed []model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completed))
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	// 6. статистика
	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	var stats model.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Incomplete)

	// 7. удаляем
	resp = doJSON(t, http.MethodDelete, api+"/"+first.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, api+"/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/state", nil)
	var state store.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, second.ID, state.Tasks[0].ID)
}

func TestRouter_Reorder(t *testing.T) {
	server := setupServer(t, repo.NewMemoryKV())
	api := server.URL + "/api/tasks"

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, http.MethodPost, api, model.TaskInput{Title: title, Description: "d"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodPost, api+"/reorder", map[string]any{"sourceIndex": 2, "destinationIndex": 0})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, api, nil)
	var tasks []model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, "C", tasks[0].Title)
	assert.Equal(t, "A", tasks[1].Title)
	assert.Equal(t, "B", tasks[2].Title)
}

func TestRouter_PersistsAcrossRestart(t *testing.T) {
	kv, err := repo.NewFileKV(t.TempDir())
	require.NoError(t, err)

	server := setupServer(t, kv)
	resp := doJSON(t, http.MethodPost, server.URL+"/api/tasks", model.TaskInput{Title: "Survive", Description: "restart"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	server.Close()

	restarted := setupServer(t, kv)
	resp = doJSON(t, http.MethodGet, restarted.URL+"/api/tasks", nil)
	var tasks []model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Survive", tasks[0].Title)
}

func TestRouter_UnknownRoute(t *testing.T) {
	server := setupServer(t, repo.NewMemoryKV())

	resp := doJSON(t, http.MethodGet, server.URL+"/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/tasks/abc", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
