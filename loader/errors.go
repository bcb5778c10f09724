package loader

import "errors"

var (
	// ErrInvalidConfig wraps every schema or validation failure. Malformed
	// configuration is the only hard error surface of the system; once a
	// snapshot exists, evaluation never fails.
	ErrInvalidConfig = errors.New("invalid feature flags config")

	// ErrFileNotFound indicates the configured file path does not exist.
	ErrFileNotFound = errors.New("feature flags file not found")
)

// errMalformed marks syntax-level parse failures, as opposed to schema or
// validation errors. Only these let [Load] fall through from the inline
// source to the file source.
var errMalformed = errors.New("malformed document")
