package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client issues authenticated JSON calls against the backend. All
// endpoint wrappers funnel through call, which attaches the bearer
// token and maps the response status onto the error taxonomy.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	log            *zap.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUnauthorizedHook registers the global reaction to a 401: wipe the
// local session and route the app to the login surface. The hook runs
// before the call returns its error.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// SetUnauthorizedHook installs or replaces the 401 reaction after
// construction. The UI program does not exist yet when the client is
// built, so the hook is wired once it does.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call performs one JSON request. A non-nil out receives the decoded
// 2xx body. skipAuth suppresses the Authorization header for the login
// and verify endpoints.
func (c *Client) call(ctx context.Context, method, path string, body, out any, skipAuth bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !skipAuth && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend call failed", zap.String("path", path), zap.Error(err))
		return &ErrTransport{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// A 401 on an unauthenticated endpoint is a credential
		// rejection, not token expiry; only the latter invalidates the
		// session globally.
		if !skipAuth {
			c.log.Warn("unauthorized, invalidating session", zap.String("path", path))
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return &ErrUnauthorized{}

	case resp.StatusCode == http.StatusForbidden:
		return &ErrForbidden{}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail := readErrorDetail(resp.Body)
		c.log.Warn("backend error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &ErrTransport{Status: resp.StatusCode, Body: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ErrBadResponse{Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out, false)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out, false)
}

// readErrorDetail extracts a human-readable message from an error body.
// The backend sends {"detail": "..."}; anything else is used verbatim,
// truncated to keep messages displayable.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	detail := strings.TrimSpace(string(raw))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return detail
}
