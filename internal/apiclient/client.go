// Package apiclient is the typed HTTP client for the health-tracker REST API.
//
// Every request carries the bound session's bearer token. A 401 on any call
// that is not an authentication attempt resets the session through
// Session.Expire and surfaces as domain.ErrSessionExpired, so views never
// handle session expiry themselves.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/healthtrack/internal/domain"
)

// HeaderRequestID carries the correlation ID of each outbound request.
const HeaderRequestID = "X-Request-ID"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Session is the credential holder the client consults on every request.
type Session interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string
	// Expire resets the session after the backend rejected its token.
	Expire(ctx context.Context) bool
}

// Observer receives one callback per completed request.
type Observer interface {
	ObserveRequest(op string, status int, elapsed time.Duration)
}

// Client talks to the backend on behalf of one session.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	logger   *slog.Logger

	mu      sync.RWMutex
	session Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient shares an http.Client, and so its connection pool, between
// clients.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of a private http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithObserver installs a request observer, typically the metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL (including the /api prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind attaches the session whose token is sent and which is expired on 401.
func (c *Client) Bind(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) boundSession() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

type requestIDKey struct{}

// WithRequestID makes outbound requests made with ctx reuse id as their
// correlation ID instead of generating a fresh one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// call describes one API request.
type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	authExempt bool
}

// errorBody is the failure shape the backend uses; some handlers put the
// reason in "error", others in "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do executes the call and decodes the response into out, which may be nil.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return &domain.FetchError{Op: cl.op, Err: err}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(cl.op, 0, start)
		c.logger.DebugContext(ctx, "api request failed", "op", cl.op, "error", err)
		return &domain.FetchError{Op: cl.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.observe(cl.op, resp.StatusCode, start)
	if err != nil {
		return &domain.FetchError{Op: cl.op, Status: resp.StatusCode, Err: err}
	}
	c.logger.DebugContext(ctx, "api request", "op", cl.op, "status", resp.StatusCode,
		"request_id", req.Header.Get(HeaderRequestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, cl, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := decodeBody(data, out); err != nil {
		return &domain.FetchError{Op: cl.op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, requestID(ctx))
	if s := c.boundSession(); s != nil {
		if token := s.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// failure maps a non-2xx response to the client's error taxonomy.
func (c *Client) failure(ctx context.Context, cl call, status int, data []byte) error {
	msg := errorMessage(data)

	if cl.authExempt {
		return &domain.AuthError{Status: status, Message: msg}
	}
	if status == http.StatusUnauthorized {
		if s := c.boundSession(); s != nil {
			s.Expire(ctx)
		}
		return domain.ErrSessionExpired
	}

	fe := &domain.FetchError{Op: cl.op, Status: status, Message: msg}
	if status == http.StatusNotFound {
		fe.Err = domain.ErrNotFound
	}
	return fe
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(op, status, time.Since(start))
	}
}

func errorMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

// decodeBody unwraps the {success, message, data} envelope when present and
// decodes bare bodies as they are.
func decodeBody(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Data != nil {
			if string(env.Data) == "null" {
				return nil
			}
			return json.Unmarshal(env.Data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}
