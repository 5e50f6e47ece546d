// Package hterror defines the error type surfaced by route handlers and
// decorators. Each error carries an HTTP status code, a message, and an
// optional structured detail payload (e.g. a validation issue list), and is
// immutable after construction.
package hterror
