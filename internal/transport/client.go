package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-clientes-sync/internal/logging"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
)

// Client is the uniform REST surface consumed by the repositories.
// Every method issues exactly one request. A non-2xx status or a network
// failure is returned as an apperrors transport error carrying the status
// code (zero when no response arrived).
type Client interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// Response is a fully read response body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the body into dest. An empty body leaves dest untouched.
func (r *Response) Decode(dest any) error {
	if r == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return apperrors.Transport(r.StatusCode, "failed to parse response", err)
	}
	return nil
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	headers    http.Header
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *httpClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *httpClient) {
		c.headers.Add(key, value)
	}
}

// New creates a JSON-over-HTTP client rooted at baseURL
// (e.g. "http://localhost:8000/api").
func New(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:  logging.Nop(),
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *httpClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *httpClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *httpClient) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *httpClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *httpClient) do(ctx context.Context, method, path string, body any) (*Response, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, apperrors.Transport(0, fmt.Sprintf("cannot reach %s", c.baseURL), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Transport(resp.StatusCode, "failed to read response", err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, data)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// parseError lifts the server's message out of FastAPI ({"detail": ...}) or
// generic ({"message": ...}) error bodies.
func parseError(status int, body []byte) error {
	var errResp struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg, ok := errResp.Detail.(string); ok && msg != "" {
			return apperrors.Transport(status, msg, nil)
		}
		if errResp.Message != "" {
			return apperrors.Transport(status, errResp.Message, nil)
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	return apperrors.Transport(status, fmt.Sprintf("server returned status %d: %s", status, text), nil)
}
