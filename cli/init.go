package cli

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/mr-tron/base58"

	actx "github.com/usherkit/usher/app/context"
	aerrors "github.com/usherkit/usher/app/errors"
	"github.com/usherkit/usher/server/api"
	"github.com/usherkit/usher/store"
)

// The Init command creates the initial Usher artifacts: the configuration
// file, an API auth token, and the notes database.
type Init struct{}

// Run the init command.
func (c *Init) Run(appCtx *actx.Context) error {
	cfg := appCtx.Config

	if !cfg.Auth.Token.Valid {
		rndToken := make([]byte, 16)
		if _, err := rand.Read(rndToken); err != nil {
			return fmt.Errorf("failed generating the API auth token: %w", err)
		}
		cfg.Auth.Token = sql.Null[string]{V: base58.Encode(rndToken), Valid: true}
	}
	if len(cfg.Auth.Roles) == 0 {
		cfg.Auth.Roles = api.DefaultRoles()
	}

	if err := cfg.Save(); err != nil {
		return aerrors.Wrap(err, "path", cfg.Path())
	}

	st, err := store.Open(appCtx.StorePath(), time.Now)
	if err != nil {
		return aerrors.Wrap(err, "path", appCtx.StorePath())
	}
	defer func() { _ = st.Close() }()
	if err = st.Init(appCtx.Ctx); err != nil {
		return aerrors.Wrap(err, "path", appCtx.StorePath())
	}

	fmt.Fprintf(appCtx.Stdout, "Initialized configuration in %s\n", cfg.Path())
	fmt.Fprintf(appCtx.Stdout, "API auth token: %s\n", cfg.Auth.Token.V)

	return nil
}
