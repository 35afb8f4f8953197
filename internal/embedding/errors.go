package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrProvider marks every failure reported by an embedding provider.
	ErrProvider = errors.New("embedding provider failure")

	// ErrPermanent marks provider failures that will not succeed on retry,
	// such as bad credentials or rejected input.
	ErrPermanent = errors.New("permanent failure, do not retry")

	// ErrMalformedVector is returned for vectors that cannot be compared.
	ErrMalformedVector = errors.New("malformed embedding vector")
)

// ProviderError wraps an error returned by a provider call.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
	Permanent bool
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("embedding provider: %v", e.Err)
	}
	return fmt.Sprintf("%s embedding provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes errors.Is match ErrProvider for every ProviderError and
// ErrPermanent for permanent ones.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProvider:
		return true
	case ErrPermanent:
		return e.Permanent
	default:
		return false
	}
}

// NewProviderError wraps err as a non-retryable provider failure.
func NewProviderError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableError wraps err as a transient provider failure.
func NewRetryableError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewPermanentError wraps err as a provider failure that must not be retried.
func NewPermanentError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err, Permanent: true}
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable && !pe.Permanent
	}
	return false
}
