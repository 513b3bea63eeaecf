package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Client talks to the pose service.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{base: baseURL, http: &http.Client{Timeout: timeout}}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	_ = drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Submit posts one session and classifies the response.
func (c *Client) Submit(ctx context.Context, s *Session) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/sessions", s)
	if err != nil {
		return outcomeFailed, err
	}
	body, err := readBody(resp)
	if err != nil {
		return outcomeFailed, err
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted, nil
	case http.StatusOK:
		var ack ackResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return outcomeDuplicate, nil
		}
		return outcomeAccepted, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return outcomeRejected, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	default:
		return outcomeFailed, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
}

// Rank fetches GET /rank/{user}.
func (c *Client) Rank(ctx context.Context, userID string) (Entry, error) {
	var e Entry
	err := c.getJSON(ctx, "/rank/"+url.PathEscape(userID), &e)
	return e, err
}

// Leaderboard fetches GET /leaderboard?limit=n.
func (c *Client) Leaderboard(ctx context.Context, n int) ([]Entry, error) {
	var entries []Entry
	err := c.getJSON(ctx, fmt.Sprintf("/leaderboard?limit=%d", n), &entries)
	return entries, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	body, err := readBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func drain(resp *http.Response) error {
	_, err := readBody(resp)
	return err
}
