// Package errors provides error types used throughout the application,
// carrying structured metadata that renders cleanly with slog.
package errors

import (
	"errors"
	"log/slog"
	"maps"
	"sort"
)

// StructuredError enhances an error with structured metadata, which can be
// rendered as fields by slog.
type StructuredError struct {
	err      error
	metadata map[string]any
}

// New creates a new StructuredError from a message string with optional
// metadata, given as alternating key/value pairs with string keys.
func New(msg string, fields ...any) *StructuredError {
	return Wrap(errors.New(msg), fields...)
}

// Wrap adds metadata to an error. If the error is already a StructuredError,
// the metadata is merged, with newer values overwriting older ones.
func Wrap(err error, fields ...any) *StructuredError {
	if len(fields)%2 != 0 {
		panic("an even number of fields is required")
	}

	metadata := make(map[string]any, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			panic("keys must be strings")
		}
		metadata[key] = fields[i+1]
	}

	var serr *StructuredError
	if errors.As(err, &serr) {
		combined := make(map[string]any, len(serr.metadata)+len(metadata))
		maps.Copy(combined, serr.metadata)
		maps.Copy(combined, metadata)
		return &StructuredError{err: serr.err, metadata: combined}
	}

	return &StructuredError{err: err, metadata: metadata}
}

// Error implements the error interface.
func (e StructuredError) Error() string {
	return e.err.Error()
}

// Unwrap allows errors.Is and errors.As to work.
func (e StructuredError) Unwrap() error {
	return e.err
}

// Metadata returns a copy of the metadata map.
func (e StructuredError) Metadata() map[string]any {
	if e.metadata == nil {
		return nil
	}
	result := make(map[string]any, len(e.metadata))
	maps.Copy(result, e.metadata)
	return result
}

// Log logs an error using the default slog logger, extracting metadata if
// it's a StructuredError.
func Log(err error) {
	var serr *StructuredError
	if !errors.As(err, &serr) {
		slog.Error(err.Error())
		return
	}

	keys := make([]string, 0, len(serr.metadata))
	for k := range serr.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, serr.metadata[k])
	}

	slog.Error(serr.Error(), args...)
}
