// Package intercom is a client for the notifier's trigger endpoints.
package intercom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"intercom/pkg/middleware"
)

const maxErrorBodyBytes = 1024

// StatusError is returned when the notifier answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("intercom returned status: %d", e.StatusCode)
	}
	return fmt.Sprintf("intercom returned status: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	secret  string
	mode    middleware.AuthMode
	client  *http.Client
}

type Option func(*Client)

// NewClient returns a client presenting secret the way mode prescribes.
func NewClient(baseURL, secret string, mode middleware.AuthMode, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		mode:    mode,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// Ring asks the notifier to forward the doorbell notification.
func (c *Client) Ring(ctx context.Context) error {
	return c.post(ctx, "/notify")
}

// Ping bumps the notifier's ping counter.
func (c *Client) Ping(ctx context.Context) error {
	return c.post(ctx, "/ping")
}

func (c *Client) post(ctx context.Context, path string) error {
	var body io.Reader = http.NoBody
	if c.mode == middleware.AuthModeBody {
		body = strings.NewReader(c.secret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if c.mode == middleware.AuthModeBody {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); err == nil && len(raw) > 0 {
		if json.Unmarshal(raw, &payload) == nil {
			statusErr.Message = payload.Error
		}
	}
	return statusErr
}
