package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrMissingAPIKey is returned when no API credential is available.
	// The credential is required before any model call, so its absence
	// is fatal at startup rather than reported per call.
	ErrMissingAPIKey = errors.New("missing API key: set the GEMINI_API_KEY environment variable")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the batch concurrency is not
	// positive. A concurrency of zero would mean no images are processed.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
