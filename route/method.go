package route

import (
	"fmt"
	"net/http"

	"github.com/usherkit/usher/hterror"
)

// Method returns a decorator that restricts a route to a single HTTP verb.
// The comparison is case-sensitive, matching the canonical uppercase method
// names. A mismatch fails with a 405 Method Not Allowed error before the
// inner handler runs.
func Method(verb string) Decorator {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			if r.Method != verb {
				return nil, hterror.MethodNotAllowed(
					fmt.Sprintf("method %s is not allowed", r.Method))
			}
			return next(w, r)
		}
	}
}

// All accepts any HTTP method and always delegates to the inner handler.
var All Decorator = func(next Handler) Handler { return next }

// Per-verb guards for the standard HTTP methods.
var (
	Get     = Method(http.MethodGet)
	Post    = Method(http.MethodPost)
	Put     = Method(http.MethodPut)
	Patch   = Method(http.MethodPatch)
	Delete  = Method(http.MethodDelete)
	Head    = Method(http.MethodHead)
	Options = Method(http.MethodOptions)
)
