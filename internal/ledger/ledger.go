// Package ledger is a thin client for the remote sheets-backed portfolio
// ledger. The service is action-keyed: reads go out as GET query params,
// writes as a JSON POST body, with an optional shared-secret token on
// every call. Responses pass through untouched.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrNotConfigured is returned when no ledger URL is set.
var ErrNotConfigured = errors.New("ledger: api url is not configured")

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	url        string
	token      string
	httpClient HTTPClient
}

func New(apiURL, token string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: apiURL, token: token, httpClient: httpClient}
}

// Configured reports whether the client has a target URL.
func (c *Client) Configured() bool { return c.url != "" }

func (c *Client) InitUser(ctx context.Context, userID, username string) (json.RawMessage, error) {
	return c.Do(ctx, "user/init", map[string]any{
		"user_id":  userID,
		"username": username,
	})
}

func (c *Client) Portfolio(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.Do(ctx, "portfolio", map[string]any{"user_id": userID})
}

func (c *Client) Trade(ctx context.Context, userID, ticker, side string, qty, price float64) (json.RawMessage, error) {
	return c.Do(ctx, "trade", map[string]any{
		"user_id": userID,
		"ticker":  ticker,
		"side":    side,
		"qty":     qty,
		"price":   price,
	})
}

func (c *Client) Leaderboard(ctx context.Context, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	return c.Do(ctx, "leaderboard", map[string]any{"limit": limit})
}

// readActions go out as GET requests; everything else is a POST.
var readActions = map[string]bool{
	"portfolio":   true,
	"leaderboard": true,
}

// Do performs a single action-keyed call. The payload must not contain
// "action" or "token"; both are injected here.
func (c *Client) Do(ctx context.Context, action string, payload map[string]any) (json.RawMessage, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	var req *http.Request
	var err error
	if readActions[action] {
		q := url.Values{}
		q.Set("action", action)
		if c.token != "" {
			q.Set("token", c.token)
		}
		for k, v := range payload {
			q.Set(k, fmt.Sprint(v))
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+q.Encode(), http.NoBody)
	} else {
		body := make(map[string]any, len(payload)+2)
		for k, v := range payload {
			body[k] = v
		}
		body["action"] = action
		if c.token != "" {
			body["token"] = c.token
		}
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("ledger: encode payload: %w", err)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: creating request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger: performing request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("ledger: reading response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("ledger: %s -> %d: %s", action, res.StatusCode, string(raw))
	}
	return json.RawMessage(raw), nil
}
