// Package adminapi is the console's client for the marketplace admin REST API.
// Every request carries the signed-in admin's bearer token; failures are logged
// and handed back to the caller untouched.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"marketadmin/internal/common"
	"marketadmin/internal/metrics"

	"go.uber.org/zap"
)

// TokenSource yields the bearer token for the request in ctx, if any
type TokenSource func(ctx context.Context) (string, bool)

// Config holds client settings
type Config struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// Client handles REST communication with the admin API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
	metrics    metrics.Recorder
}

// NewClient creates a new admin API client
func NewClient(cfg Config, tokens TokenSource, logger *zap.Logger, recorder metrics.Recorder) *Client {
	if tokens == nil {
		tokens = func(context.Context) (string, bool) { return "", false }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logger,
		metrics:    recorder,
	}
}

// request describes one API call. route is the path template used as a metrics label.
type request struct {
	method  string
	route   string
	path    string
	payload any
	// envelope is the named key the API may wrap the payload in
	envelope string
	out      any
}

// do performs an HTTP request against the admin API and decodes the response into req.out
func (c *Client) do(ctx context.Context, req request) error {
	url := c.baseURL + req.path

	var body io.Reader
	if req.payload != nil {
		jsonData, err := json.Marshal(req.payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens(ctx); ok && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := common.GetRequestID(ctx)
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveUpstream(req.method, req.route, 0, time.Since(start))
		c.logger.Error("admin api request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	c.metrics.ObserveUpstream(req.method, req.route, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(req.method, req.path, resp.StatusCode, respBody)
		c.logger.Warn("admin api returned an error",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
			zap.String("message", apiErr.Message),
			zap.ByteString("body", respBody),
		)
		return apiErr
	}

	if req.out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := decodeEnvelope(respBody, req.envelope, req.out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// decodeEnvelope accepts a bare payload, a {"data": ...} wrapper, or a named-key wrapper
func decodeEnvelope(body []byte, key string, out any) error {
	raw := json.RawMessage(body)

	if inner, ok := unwrap(raw, "data"); ok {
		raw = inner
	}
	if key != "" {
		if inner, ok := unwrap(raw, key); ok {
			raw = inner
		}
	}

	return json.Unmarshal(raw, out)
}

func unwrap(raw json.RawMessage, key string) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	inner, ok := obj[key]
	if !ok || len(inner) == 0 || string(inner) == "null" {
		return nil, false
	}
	return inner, true
}
