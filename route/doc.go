// Package route adapts plain result-returning handler functions into
// net/http handlers using a composable, clear, and simple API. It provides
// reusable decorators for HTTP method restriction, pre-handler middleware,
// and JSON Schema validation of query parameters, request bodies, and
// response payloads, which allows core handlers to implement only business
// logic that is unique to each endpoint.
//
// Decorators are explicit Handler -> Handler functions applied in the
// declared order at registration time: the first decorator listed is the
// outermost. Each decorator either delegates to the next layer or fails with
// an error, and every error bubbles unmodified to the group's single error
// handler, which produces the response body.
package route
