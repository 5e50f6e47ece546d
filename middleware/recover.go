package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Recover converts handler panics into 500 responses instead of letting them
// tear down the connection. http.ErrAbortHandler is re-raised, since it's the
// sanctioned way to abort a response.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler { //nolint:errorlint // net/http requires a direct comparison.
					panic(rvr)
				}

				logger.Error("panic while serving request",
					"panic", rvr, "request_id", RequestIDFrom(r))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"message": "internal server error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
