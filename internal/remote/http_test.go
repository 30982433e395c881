package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/completed_modules", r.URL.Path)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"user_id":"user-1","module_id":"k-intro","completed_at":"2025-03-02T10:00:00Z"},
			{"user_id":"user-1","module_id":"k-theory","completed_at":"2025-03-03T11:30:00Z"}
		]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	rows, err := c.CompletedModules(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "k-intro", rows[0].ModuleID)
	assert.Equal(t, "k-theory", rows[1].ModuleID)
	assert.Equal(t, 2025, rows[0].CompletedAt.Year())
}

func TestInsertCompletedModule(t *testing.T) {
	var received []CompletedModule
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/completed_modules", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	row := CompletedModule{
		UserID:      "user-1",
		ModuleID:    "k-lifewheel",
		CompletedAt: time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.InsertCompletedModule(context.Background(), row))
	require.Len(t, received, 1)
	assert.Equal(t, row.ModuleID, received[0].ModuleID)
	assert.Equal(t, row.UserID, received[0].UserID)
}

func TestJoinDate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     time.Time
		found    bool
	}{
		{
			name:     "present",
			response: `[{"join_date":"2025-03-01T09:00:00Z"}]`,
			want:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			found:    true,
		},
		{
			name:     "user row missing",
			response: `[]`,
			found:    false,
		},
		{
			name:     "null join date",
			response: `[{"join_date":null}]`,
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rest/v1/users", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "test-key")
			got, found, err := c.JoinDate(context.Background(), "user-1")
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.True(t, got.Equal(tt.want), "join date = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateJoinDate(t *testing.T) {
	var patched map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/users", r.URL.Path)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	joinDate := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, c.UpdateJoinDate(context.Background(), "user-1", joinDate))
	assert.Equal(t, "2025-03-01T09:00:00Z", patched["join_date"])
}

func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	_, err := c.CompletedModules(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c := NewHTTPClient(srv.URL, "test-key")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.CompletedModules(ctx, "user-1")
	require.Error(t, err)
}
