package models

import "fmt"

// Error codes used in API diagnostics and internal error handling.
const (
	// ErrCodeTransport marks connection/timeout failures during a fetch.
	// Retried (bounded, with backoff) only by the JSON-endpoint strategy.
	ErrCodeTransport = "TRANSPORT_ERROR"

	// ErrCodeUpstreamBlocked marks a non-2xx status or implausibly short
	// body from the target site (anti-bot wall, CAPTCHA interstitial).
	ErrCodeUpstreamBlocked = "UPSTREAM_BLOCKED"

	// ErrCodeUnparseableBody marks a body fetched successfully from which
	// no extraction stage produced a record. Terminal, never retried.
	ErrCodeUnparseableBody = "UNPARSEABLE_BODY"

	// ErrCodeGenerationFailure marks a failed or disabled text-generation
	// call. Downgraded to a placeholder string, never fails the request.
	ErrCodeGenerationFailure = "GENERATION_FAILURE"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// SearchError is the internal error type carrying an error code.
// It implements the error interface and supports wrapping via Unwrap.
type SearchError struct {
	Code    string
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewSearchError creates a new SearchError.
func NewSearchError(code, message string, err error) *SearchError {
	return &SearchError{Code: code, Message: message, Err: err}
}
