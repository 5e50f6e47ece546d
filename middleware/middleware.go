package middleware

import (
	"net/http"
)

// Middleware is a function that wraps an http.Handler to provide additional
// functionality such as logging, request identification, panic recovery, etc.
// It takes a handler and returns a new handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps a handler with middlewares in the exact order specified: the
// first middleware runs first on the way in.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
