package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUploadTimeout marks an attachment upload that exceeded the wall-clock
// guard. It is never surfaced to the submitter; the attachment is dropped.
var ErrUploadTimeout = errors.New("attachment upload timed out")

// ValidationError reports every offending field of a raw submission at once
// so the client can highlight them in a single round trip.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return strings.Join(parts, "; ")
}

// ConfigError signals a missing server-side setting or credential. Handlers
// must replace its detail with a generic message before responding.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigError builds a ConfigError with the given reason.
func NewConfigError(reason string) *ConfigError {
	return &ConfigError{Reason: reason}
}

// BackendError wraps a transient failure from an upstream storage or API
// call. It is not retried here; the caller decides how to surface it.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err with the failing operation name.
func NewBackendError(op string, err error) *BackendError {
	return &BackendError{Op: op, Err: err}
}
