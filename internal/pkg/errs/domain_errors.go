package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Event store errors
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// Command handling errors
	ErrRetryExhausted = errors.New("conflict retries exhausted")

	// Read-side errors
	ErrConferenceNotFound = errors.New("conference not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
