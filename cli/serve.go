package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	actx "github.com/usherkit/usher/app/context"
	"github.com/usherkit/usher/server"
	"github.com/usherkit/usher/server/api"
	"github.com/usherkit/usher/store"
)

// Serve starts the web server.
type Serve struct {
	Address string `help:"[host]:port to listen on" placeholder:"[host]:port"`
}

// Run the serve command.
func (c *Serve) Run(appCtx *actx.Context) error {
	if c.Address == "" {
		c.Address = ":8080"
	}

	st, err := store.Open(appCtx.StorePath(), time.Now)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	if err = st.Init(appCtx.Ctx); err != nil {
		return err
	}

	apiCfg := api.Config{}
	if appCtx.Config != nil {
		if appCtx.Config.Auth.Token.Valid {
			apiCfg.AuthToken = appCtx.Config.Auth.Token.V
		}
		apiCfg.Roles = appCtx.Config.Auth.Roles
	}

	srv, err := server.New(st, appCtx.Logger, c.Address, apiCfg)
	if err != nil {
		return err
	}

	// Gracefully shutdown the server if a process signal is received, or the
	// main context is done.
	// See https://dev.to/mokiat/proper-http-shutdown-in-go-3fji
	srvDone := make(chan error)
	go func() {
		srvErr := srv.ListenAndServe()
		slog.Debug("web server shutdown")
		srvDone <- srvErr
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sigCh:
		slog.Debug("process received signal", "signal", s)
	case <-appCtx.Ctx.Done():
		slog.Debug("app context is done")
	case srvErr := <-srvDone:
		if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			return fmt.Errorf("web server error: %w", srvErr)
		}
		return nil
	}

	if err = srv.Shutdown(appCtx.Ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed shutting down web server: %w", err)
	}

	return nil
}
