// Package notify reports tour completion to the Sclera API, best effort.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultTimeout = 5 * time.Second

// Client posts tour lifecycle notifications. Callers treat every call as
// fire-and-forget: a returned error is logged by the caller, never retried.
type Client struct {
	BaseURL string
	Client  *http.Client
}

type completionPayload struct {
	Completed bool `json:"completed"`
}

// NewClient constructs a client with defaults applied.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Completed reports that the walkthrough finished. The response body is
// ignored beyond the status code.
func (c *Client) Completed(ctx context.Context) error {
	if c.BaseURL == "" {
		return fmt.Errorf("notify base URL is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := json.Marshal(completionPayload{Completed: true})
	if err != nil {
		return fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/tutorial/complete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("post completion: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("completion endpoint returned %s", resp.Status)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: defaultTimeout}
}
