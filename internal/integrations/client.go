package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"underwriter/pkg/platform/circuit"
)

const maxErrorBody = 4 << 10

// Client is a JSON-over-HTTP client for one collaborator. Retryable
// failures count towards the circuit breaker; while the breaker is open
// calls fail fast with ErrorOutage.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

func WithBreaker(b *circuit.Breaker) ClientOption {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(name, baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: circuit.New(name),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return c.name }

// errorBody is the error envelope collaborators answer with.
type errorBody struct {
	Message  string   `json:"message"`
	Messages []string `json:"errorMessages"`
}

// Do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	if !c.breaker.Allow() {
		return NewError(ErrorOutage, c.name, "circuit open", nil)
	}

	err := c.do(ctx, method, path, in, out)
	switch {
	case err == nil:
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "collaborator circuit closed", "collaborator", c.name)
		}
	case IsRetryable(err):
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "collaborator circuit opened", "collaborator", c.name, "error", err)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return NewError(ErrorInternal, c.name, "marshal request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return NewError(ErrorInternal, c.name, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return NewError(ErrorTimeout, c.name, "request timed out", err)
		}
		return NewError(ErrorOutage, c.name, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(c.name, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewError(ErrorBadData, c.name, "decode response", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func statusError(name string, status int, raw []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := eb.Message
	if msg == "" && len(eb.Messages) > 0 {
		msg = strings.Join(eb.Messages, "; ")
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}

	switch {
	case status == http.StatusNotFound:
		return NewError(ErrorNotFound, name, msg, nil)
	case status == http.StatusTooManyRequests:
		return NewError(ErrorRateLimited, name, msg, nil)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return NewError(ErrorRejected, name, msg, nil)
	case status == http.StatusGatewayTimeout:
		return NewError(ErrorTimeout, name, msg, nil)
	case status >= 500:
		return NewError(ErrorOutage, name, msg, nil)
	default:
		return NewError(ErrorContractMismatch, name, msg, nil)
	}
}
