// Package server assembles the demo HTTP server around the notes API.
package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/usherkit/usher/middleware"
	"github.com/usherkit/usher/server/api"
	"github.com/usherkit/usher/store"
)

// Server is a wrapper around http.Server with some custom behavior.
type Server struct {
	*http.Server
	logger *slog.Logger
}

// New returns a new web Server instance that will listen on addr.
func New(st *store.Store, logger *slog.Logger, addr string, apiCfg api.Config) (*Server, error) {
	logger = logger.With("component", "web-server")

	handler, err := SetupHandlers(st, logger, apiCfg)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Server: &http.Server{
			Handler:           handler,
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      time.Minute,
		},
		logger: logger,
	}

	return srv, nil
}

// ListenAndServe starts the HTTP server. It stores the actual listen
// address, which is convenient when the address is dynamically determined by
// the system (e.g. ':0').
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		//nolint:wrapcheck // This is fine.
		return err
	}

	s.Addr = ln.Addr().String()
	s.logger.Info("started listener", "address", s.Addr)

	//nolint:wrapcheck // This is fine.
	return s.Serve(ln)
}

// SetupHandlers configures the server HTTP handlers.
func SetupHandlers(st *store.Store, logger *slog.Logger, apiCfg api.Config) (http.Handler, error) {
	apiHandler, err := api.SetupHandlers(st, logger, apiCfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiHandler))

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recover(logger),
	), nil
}
