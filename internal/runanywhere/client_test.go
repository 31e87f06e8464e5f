package runanywhere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		expectError bool
	}{
		{name: "success", baseURL: "https://api.runanywhere.test/", expectError: false},
		{name: "empty base url", baseURL: "", expectError: true},
		{name: "unsupported scheme", baseURL: "ftp://api.runanywhere.test", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("key", tt.baseURL, time.Second)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://api.runanywhere.test/v1/tasks", c.endpoint)
		})
	}
}

func TestNewProvider_NoBaseURL(t *testing.T) {
	c, err := NewProvider("", time.Second)("key")
	assert.ErrorIs(t, err, ErrNoBaseURL)
	assert.Nil(t, c)
}

func TestClient_RunTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/tasks", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "translate", body["task"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"done","output":"hola"}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", srv.URL, time.Second)
	require.NoError(t, err)

	task := "translate"
	got, err := c.RunTask(context.Background(), &model.TaskRequest{Task: &task, Input: "hello"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "done", "output": "hola"}, got)
}

func TestClient_RunTask_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad key\n"))
	}))
	defer srv.Close()

	c, err := NewClient("wrong", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.RunTask(context.Background(), &model.TaskRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad key", apiErr.Body)
}
