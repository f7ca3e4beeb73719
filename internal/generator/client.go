// Package generator is the boundary to the external code-generation backend.
// Adapters translate a GenerationRequest into a provider call and map every
// backend failure to a typed Error; callers treat each call as a single
// best-effort attempt with no retries.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codelovable/codelovable/internal/model"
)

// ErrorKind discriminates generation failures.
type ErrorKind string

const (
	// KindValidation means the request was rejected before dispatch:
	// empty prompt, unknown mode.
	KindValidation ErrorKind = "validation"
	// KindConfig means the backend is unreachable by construction:
	// missing credential, bad model string, misconfiguration.
	KindConfig ErrorKind = "config"
	// KindTransport covers network and HTTP-level failures.
	KindTransport ErrorKind = "transport"
	// KindMalformedResponse means the backend answered but the payload
	// did not satisfy the GenerationResult contract.
	KindMalformedResponse ErrorKind = "malformed-response"
	// KindBackendRejected means the backend refused the request
	// (quota, content policy, invalid model).
	KindBackendRejected ErrorKind = "backend-rejected"
)

// Error is a typed generation failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a generation error kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a generation error from a format string.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the error kind, defaulting to transport for untyped errors.
func KindOf(err error) ErrorKind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindTransport
}

// Client is the generation boundary the orchestrator depends on.
type Client interface {
	// RequestGeneration performs one best-effort generation call.
	RequestGeneration(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error)

	// ModelName returns the configured model identifier.
	ModelName() string

	// IsAvailable reports whether the client is configured well enough
	// to attempt a request.
	IsAvailable() bool
}

// ClientConfig contains common configuration for generation backends.
type ClientConfig struct {
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// DefaultTimeout for generation requests. Code generation responses are
// large, so this is looser than a chat round-trip would need.
const DefaultTimeout = 120 * time.Second

// DefaultMaxTokens matches the original backend's completion budget.
const DefaultMaxTokens = 4000
