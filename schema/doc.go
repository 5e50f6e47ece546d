// Package schema validates request and response payloads against JSON
// Schemas. The actual validation is delegated to the gojsonschema library;
// this package adds an Engine with a small set of configuration knobs
// (collecting all errors, nullable fields, stripping undeclared properties,
// applying defaults, and scalar type coercion) on top of it.
//
// Validation is a pure call: it returns the normalized instance and the list
// of issues directly, keeps the caller's value untouched, and holds no
// mutable state between calls, so a single Engine is safe to share across
// concurrent requests.
package schema
