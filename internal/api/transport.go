package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/logging"
)

// RequestIDHeader carries the per-call request ID to the backend.
const RequestIDHeader = "X-Request-ID"

var (
	errEmptyBody    = errors.New("empty response body")
	errNullBody     = errors.New("null response body")
	errTrailingData = errors.New("trailing data after JSON value")
	errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
)

// call describes one backend request.
type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	timeout time.Duration

	// expect, when non-zero, is the only status treated as success.
	expect int

	// decode parses a successful, non-empty body. Nil skips decoding.
	decode func([]byte) error

	// requireBody makes an empty successful body a decode failure.
	requireBody bool
}

// response is what came back from a successful exchange.
type response struct {
	status int
	body   []byte
}

// do performs the call, decodes the body, and reports the outcome exactly once
// to the logger and the recorder. It never returns a Go error.
func (c *Client) do(ctx context.Context, cl call) (response, Failure) {
	ctx, requestID := logging.EnsureRequestID(ctx)
	start := time.Now()

	resp, failure := c.exchange(ctx, requestID, cl)
	if failure.OK() && len(resp.body) == 0 && cl.requireBody {
		failure = Failure{Kind: FailureDecode, StatusCode: resp.status, Err: errEmptyBody}
	}
	if failure.OK() && len(resp.body) > 0 && cl.decode != nil {
		if err := cl.decode(resp.body); err != nil {
			failure = Failure{Kind: FailureDecode, StatusCode: resp.status, Err: err}
		}
	}

	c.report(ctx, cl, requestID, resp.status, failure, time.Since(start))
	if !failure.OK() {
		return response{status: resp.status}, failure
	}
	return resp, failure
}

func (c *Client) exchange(ctx context.Context, requestID string, cl call) (response, Failure) {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.cfg.RequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return response{}, Failure{Kind: FailureDecode, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path, cl.query), reader)
	if err != nil {
		return response{}, Failure{Kind: FailureTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, Failure{Kind: FailureTransport, Err: transportError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return response{status: resp.StatusCode}, Failure{
			Kind:       FailureTransport,
			StatusCode: resp.StatusCode,
			Err:        transportError(err),
		}
	}

	if !c.accepted(cl, resp.StatusCode) {
		return response{status: resp.StatusCode}, Failure{
			Kind:       FailureHTTP,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: HTTP %d", errors.ErrRequestFailed, resp.StatusCode),
		}
	}
	if len(body) > maxBodyBytes {
		return response{status: resp.StatusCode}, Failure{
			Kind:       FailureDecode,
			StatusCode: resp.StatusCode,
			Err:        errBodyTooLarge,
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = nil
	}
	return response{status: resp.StatusCode, body: body}, Failure{}
}

func (c *Client) accepted(cl call, status int) bool {
	if cl.expect != 0 {
		return status == cl.expect
	}
	return status >= 200 && status < 300
}

// endpoint joins path and query onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// transportError tags err with the sentinel the CLI classifies on.
func transportError(err error) error {
	if errors.IsTimeout(err) {
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", errors.ErrBackendUnavailable, err)
}

func (c *Client) report(ctx context.Context, cl call, requestID string, status int, f Failure, d time.Duration) {
	c.recorder.ObserveCall(cl.op, status, f.Kind.String(), d)

	logger := c.logger
	if logger == nil {
		logger = logging.Logger()
	}

	attrs := []any{
		logging.KeyOperation, cl.op,
		logging.KeyMethod, cl.method,
		logging.KeyPath, cl.path,
		logging.KeyStatus, status,
		logging.KeyRequestID, requestID,
		logging.KeyDuration, d.Milliseconds(),
	}
	if f.OK() {
		logger.DebugContext(ctx, "backend call", attrs...)
		return
	}

	attrs = append(attrs, logging.KeyFailure, f.Kind.String())
	if f.Err != nil {
		attrs = append(attrs, logging.KeyError, logging.MaskString(f.Err.Error()))
	}
	logger.Log(ctx, slog.LevelWarn, "backend call failed", attrs...)
}

// decodeJSON parses exactly one JSON value into v. A null value or trailing
// data is rejected.
func decodeJSON(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errEmptyBody
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return errNullBody
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// list runs a query whose body is a JSON array. On any failure the value is an
// empty, non-nil slice.
func list[T any](ctx context.Context, c *Client, cl call) Result[[]T] {
	var items []T
	cl.decode = func(b []byte) error { return decodeJSON(b, &items) }
	cl.requireBody = true

	_, f := c.do(ctx, cl)
	if !f.OK() || items == nil {
		items = []T{}
	}
	return Result[[]T]{Value: items, Failure: f}
}

// aggregate runs a query whose body is a single JSON object. On any failure the
// value is the zero aggregate.
func aggregate[T any](ctx context.Context, c *Client, cl call) Result[T] {
	var value T
	cl.decode = func(b []byte) error { return decodeJSON(b, &value) }
	cl.requireBody = true

	_, f := c.do(ctx, cl)
	if !f.OK() {
		var zero T
		return Result[T]{Value: zero, Failure: f}
	}
	return Result[T]{Value: value}
}

// command runs a create, log or delete.
func command[T any](ctx context.Context, c *Client, cl call) CommandResult[T] {
	var value T
	cl.decode = func(b []byte) error { return decodeJSON(b, &value) }

	resp, f := c.do(ctx, cl)
	if !f.OK() {
		return CommandResult[T]{Failure: f}
	}
	if resp.body == nil {
		return CommandResult[T]{Accepted: true}
	}
	return CommandResult[T]{
		Value:    &value,
		Body:     json.RawMessage(resp.body),
		Accepted: true,
	}
}
