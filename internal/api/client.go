package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// Client talks to the Write It backend. It holds no cached state; every
// method is a single round trip.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     int64
	log        *zap.Logger
}

// Options configures a Client. BaseURL is the backend origin, e.g.
// http://localhost:8080; the /api/v1 prefix is added when missing.
type Options struct {
	BaseURL     string
	UserID      int64
	HTTPTimeout time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// NewClient builds a client from explicit options.
func NewClient(opts Options) *Client {
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	if !strings.HasSuffix(base, apiPrefix) {
		base += apiPrefix
	}
	return &Client{
		httpClient: hc,
		baseURL:    base,
		userID:     opts.UserID,
		log:        log,
	}
}

// BaseURL returns the resolved API root including /api/v1.
func (c *Client) BaseURL() string { return c.baseURL }

// UserID is the current-user context the client was built with.
func (c *Client) UserID() int64 { return c.userID }

// do issues one request. body is JSON-encoded when non-nil and the
// response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &UnreachableError{Host: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		if v := resp.Header.Get("X-Request-Id"); v != "" {
			requestID = v
		}
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(b),
			RequestID:  requestID,
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if text, ok := out.(*string); ok {
		return readText(resp.Body, text)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readText accepts a bare string body, JSON-quoted or not.
func readText(r io.Reader, out *string) error {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) && json.Unmarshal([]byte(raw), out) == nil {
		return nil
	}
	*out = raw
	return nil
}
