// Package rest is the typed request pipeline shared by every service:
// perform a call, decode the body, classify the failure, and hand the
// result back on the dispatch loop.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"photofeed/internal/dispatch"
)

// Client performs HTTP calls on background goroutines and delivers every
// completion on its dispatch loop, exactly once per call.
type Client struct {
	http   *http.Client
	loop   *dispatch.Loop
	logger *slog.Logger
}

func NewClient(timeout time.Duration, loop *dispatch.Loop, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		loop:   loop,
		logger: logger.With("component", "rest"),
	}
}

// Call is the handle for one in-flight request.
type Call struct {
	cancel context.CancelFunc
}

// Cancel aborts the transport operation. The call still delivers exactly
// one completion, carrying ErrCancelled.
func (c *Call) Cancel() {
	c.cancel()
}

// NewRequest builds a request, mapping construction failures to
// ErrMalformedRequest.
func NewRequest(method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return req, nil
}

// Authorize sets the bearer Authorization header.
func Authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// Object dispatches req, decodes a 2xx body into T and posts complete onto
// the client's loop with either the value or a classified error. Exactly
// one completion is delivered per call, cancelled or not.
func Object[T any](c *Client, req *http.Request, complete func(T, error)) *Call {
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	call := &Call{cancel: cancel}

	go func() {
		var value T
		data, err := c.do(ctx, req)
		if err == nil {
			if uerr := json.Unmarshal(data, &value); uerr != nil {
				err = &DecodeError{Err: uerr}
			}
		}
		c.loop.Post(func() {
			complete(value, err)
		})
	}()

	return call
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
		)
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return data, nil
}

// IsCancelled reports whether err is a suppressed cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
