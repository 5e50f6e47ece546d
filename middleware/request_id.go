package middleware

import (
	"context"
	"net/http"

	"github.com/nrednav/cuid2"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// RequestIDHeader is the header the request ID is read from and echoed on.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns every request a unique ID, unless the client already
// supplied one. The ID is stored in the request context and echoed in the
// response headers.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = cuid2.Generate()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), contextKeyRequestID, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFrom returns the request's ID, or an empty string if the RequestID
// middleware didn't run.
func RequestIDFrom(r *http.Request) string {
	if v := r.Context().Value(contextKeyRequestID); v != nil {
		return v.(string) //nolint:errcheck,forcetypeassert // Only set with constant key.
	}
	return ""
}
