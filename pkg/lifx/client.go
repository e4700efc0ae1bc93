package lifx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the LIFX HTTP API root
	DefaultBaseURL = "https://api.lifx.com/v1"

	// DefaultUserAgent identifies this client to LIFX
	DefaultUserAgent = "mcp-lifx-server/1.0"

	// TokenEnvVar is the environment variable the token is read from
	TokenEnvVar = "LIFX_API_TOKEN"
)

// Config holds what the client needs to reach the LIFX API.
type Config struct {
	Token     string
	BaseURL   string
	UserAgent string

	// Timeout bounds a single request. Zero leaves it to the transport.
	Timeout time.Duration
}

// Request describes one call against the API. Path is relative to the
// base URL and must already be escaped; Query is a raw, encoded query
// string. A non-nil Body is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// Response is a successful (2xx) API response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsJSON reports whether the response declared a JSON body.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// Empty reports whether the response carried no payload.
func (r *Response) Empty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if r.Empty() {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Pretty renders the payload for display. JSON bodies are re-indented
// without decoding so numbers survive untouched; anything else is
// returned verbatim.
func (r *Response) Pretty() string {
	if r.Empty() {
		return ""
	}
	if r.IsJSON() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimSpace(r.Body), "", "  "); err == nil {
			return buf.String()
		}
	}
	return string(r.Body)
}

// Client performs authenticated requests against the LIFX HTTP API.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets a fresh one using
// cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// IsConfigured returns true if the client has a token.
func (c *Client) IsConfigured() bool {
	return c.config.Token != ""
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// CheckConfig returns a *ConfigError when no token is set.
func (c *Client) CheckConfig() error {
	if !c.IsConfigured() {
		return &ConfigError{EnvVar: TokenEnvVar}
	}
	return nil
}

// Do issues exactly one request. There is no retry: non-2xx responses
// come back as *APIError and failures to get a response as
// *TransportError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	url := c.config.BaseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if req.Query != "" {
		url += "?" + req.Query
	}

	var body io.Reader
	if req.Body != nil && (method == http.MethodPost || method == http.MethodPut) {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("lifx request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(respBody),
		}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
