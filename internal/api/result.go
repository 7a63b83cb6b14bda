package api

import (
	"encoding/json"
	"fmt"
)

// FailureKind classifies why a backend call did not succeed.
type FailureKind int

const (
	// FailureNone means the call succeeded.
	FailureNone FailureKind = iota
	// FailureHTTP means the backend answered with a non-2xx status.
	FailureHTTP
	// FailureTransport means no usable answer arrived: refused, DNS, timeout or cancellation.
	FailureTransport
	// FailureDecode means the body did not match the endpoint's schema.
	FailureDecode
)

// String returns the failure kind name used in logs and metrics.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureHTTP:
		return "http"
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Failure describes an unsuccessful call. The zero value means success.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

// OK reports whether the call succeeded.
func (f Failure) OK() bool {
	return f.Kind == FailureNone
}

// Unreachable reports whether the backend could not be reached at all.
func (f Failure) Unreachable() bool {
	return f.Kind == FailureTransport
}

// Error describes the failure, or returns "" on success.
func (f Failure) Error() string {
	switch f.Kind {
	case FailureNone:
		return ""
	case FailureHTTP:
		return fmt.Sprintf("backend returned HTTP %d", f.StatusCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
		}
		return f.Kind.String() + " failure"
	}
}

// Result carries the outcome of a query or aggregate. On failure Value holds
// the empty shape for its type: an empty non-nil slice, or a zero aggregate.
type Result[T any] struct {
	Value T
	Failure
}

// CommandResult carries the outcome of a create, log or delete.
//
// A 2xx response with a body decodes into Value and keeps the exact bytes in
// Body. A 2xx response without a body leaves Value nil with Accepted true.
// Any failure leaves Value and Body nil with Accepted false.
type CommandResult[T any] struct {
	Value    *T
	Body     json.RawMessage
	Accepted bool
	Failure
}

// OK reports whether the backend accepted the command.
func (r CommandResult[T]) OK() bool {
	return r.Accepted
}
