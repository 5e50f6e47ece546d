package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/usherkit/usher/hterror"
)

// Handler is the application-style handler used by this package. It returns
// a response payload (that will be JSON encoded) or an error.
type Handler func(w http.ResponseWriter, r *http.Request) (any, error)

// Decorator wraps a Handler to provide additional functionality such as
// method restriction, middleware, or payload validation. It takes a handler
// and returns a new handler.
type Decorator func(Handler) Handler

// ErrorHandler produces the response body for a failed request. It receives
// the error that reached the outermost wrapper; the response status code is
// already set from the error when it runs.
type ErrorHandler func(err error, w http.ResponseWriter, r *http.Request) any

// Group holds the configuration shared by a group of routes. Every group
// requires an error handler; all errors thrown anywhere in a route's
// decorator chain are funneled to it exactly once.
type Group struct {
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithLogger sets the logger used for response serialization failures.
func WithLogger(logger *slog.Logger) GroupOption {
	return func(g *Group) { g.logger = logger }
}

// NewGroup creates a route group with the given error handler. A nil error
// handler is a configuration error and is rejected up front, rather than
// failing on the first request that needs it.
func NewGroup(errorHandler ErrorHandler, opts ...GroupOption) (*Group, error) {
	if errorHandler == nil {
		return nil, errors.New("a route group requires an error handler")
	}

	g := &Group{errorHandler: errorHandler, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Handle adapts a handler and its decorators into an http.HandlerFunc.
// Decorators are applied in the declared order, so the first one listed runs
// first on the way in. On success the handler's return value is serialized
// as the JSON response body with status 200. On error the status code is set
// from the error (500 for errors without one), the group's error handler is
// invoked with the error, and its return value is serialized as the body.
// Exactly one response is written per request.
func (g *Group) Handle(h Handler, decorators ...Decorator) http.HandlerFunc {
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h(w, r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(hterror.StatusCode(err))
			g.writeBody(w, g.errorHandler(err, w, r))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		g.writeBody(w, result)
	}
}

func (g *Group) writeBody(w http.ResponseWriter, body any) {
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// The status line is already written, so all that's left is logging.
		g.logger.Error("failed writing response", "error", err.Error())
	}
}
