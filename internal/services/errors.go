package services

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the translation provider has no usable
// credentials. It is surfaced to the user as a configuration problem for
// the current request; it never crashes the process.
var ErrNotConfigured = errors.New("translation service is not configured")

// ErrNotFound is returned when no record exists for an id. Expired-and-
// removed, swept, and never-existed ids are indistinguishable to callers.
var ErrNotFound = errors.New("translation not found")

// ErrExpired is returned exactly once per record: when a resolve finds it
// older than the TTL. The record is deleted before this error surfaces, so
// a retried resolve yields ErrNotFound.
var ErrExpired = errors.New("translation expired")

// TranslationError carries a provider-side failure message verbatim.
// Requests that hit one fail without retry.
type TranslationError struct {
	Message string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation provider error: %s", e.Message)
}
