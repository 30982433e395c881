package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient implements Client against a PostgREST-style REST API
// (the shape Supabase exposes over its tables).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the REST endpoint at baseURL,
// authenticating every request with apiKey.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) CompletedModules(ctx context.Context, userID string) ([]CompletedModule, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/completed_modules?user_id=eq.%s&select=user_id,module_id,completed_at",
		c.baseURL, url.QueryEscape(userID))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch completed modules: %w", err)
	}

	var rows []CompletedModule
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode completed modules: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) InsertCompletedModule(ctx context.Context, row CompletedModule) error {
	endpoint := c.baseURL + "/rest/v1/completed_modules"

	payload, err := json.Marshal([]CompletedModule{row})
	if err != nil {
		return fmt.Errorf("encode completion row: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, endpoint, payload); err != nil {
		return fmt.Errorf("insert completed module %q: %w", row.ModuleID, err)
	}
	return nil
}

func (c *HTTPClient) JoinDate(ctx context.Context, userID string) (time.Time, bool, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/users?id=eq.%s&select=join_date",
		c.baseURL, url.QueryEscape(userID))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("fetch join date: %w", err)
	}

	var rows []struct {
		JoinDate *time.Time `json:"join_date"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return time.Time{}, false, fmt.Errorf("decode join date: %w", err)
	}
	if len(rows) == 0 || rows[0].JoinDate == nil {
		return time.Time{}, false, nil
	}
	return *rows[0].JoinDate, true, nil
}

func (c *HTTPClient) UpdateJoinDate(ctx context.Context, userID string, joinDate time.Time) error {
	endpoint := fmt.Sprintf("%s/rest/v1/users?id=eq.%s", c.baseURL, url.QueryEscape(userID))

	payload, err := json.Marshal(map[string]string{
		"join_date": joinDate.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode join date: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPatch, endpoint, payload); err != nil {
		return fmt.Errorf("update join date: %w", err)
	}
	return nil
}

// do performs one authenticated request and returns the response body.
// Any non-2xx status is an error carrying the response text.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
