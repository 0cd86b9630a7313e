// Package ports declares the capabilities the estimation engine depends on.
// Implementations live in aiclient; tests substitute fakes.
package ports

import (
	"context"
	"errors"
)

// Backend error taxonomy. Implementations wrap one of these sentinels so the
// engine can classify failures with errors.Is. None of them ever escape the
// engine's entry points.
var (
	// ErrTimeout indicates the backend did not answer within the deadline.
	ErrTimeout = errors.New("ai backend: timeout")
	// ErrUnavailable indicates a transport failure or a 5xx upstream status.
	ErrUnavailable = errors.New("ai backend: unavailable")
	// ErrUnauthorized indicates the configured credential was rejected.
	ErrUnauthorized = errors.New("ai backend: unauthorized")
	// ErrMalformedUpstream indicates a 2xx response that could not be decoded.
	ErrMalformedUpstream = errors.New("ai backend: malformed upstream response")
)

// AIBackend is a single call-and-timeout round trip to a generative backend.
// The deadline is carried on ctx; implementations issue exactly one request
// and never retry internally. Implementations must be safe for concurrent use.
type AIBackend interface {
	// Complete sends an instruction block and a data block and returns the raw
	// completion text, which may embed a JSON document in surrounding prose.
	Complete(ctx context.Context, instruction, data string) (string, error)
	// ModelName identifies the underlying model for logging.
	ModelName() string
}
