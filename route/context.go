package route

import (
	"context"
	"net/http"
)

type contextKey string

const (
	contextKeyQuery contextKey = "validated_query"
	contextKeyBody  contextKey = "validated_body"
)

func withQuery(ctx context.Context, params map[string]any) context.Context {
	return context.WithValue(ctx, contextKeyQuery, params)
}

func withBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, contextKeyBody, body)
}

// QueryFrom returns the validated and normalized query parameters stored by
// a Query decorator, or nil if none ran for this request.
func QueryFrom(r *http.Request) map[string]any {
	if v := r.Context().Value(contextKeyQuery); v != nil {
		return v.(map[string]any) //nolint:errcheck,forcetypeassert // Only set with constant key.
	}
	return nil
}

// BodyFrom returns the validated and normalized request body stored by a
// Body decorator, or nil if none ran for this request.
func BodyFrom(r *http.Request) any {
	return r.Context().Value(contextKeyBody)
}
