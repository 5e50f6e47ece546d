package context

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/usherkit/usher/app/config"
)

// Context contains common objects used by the application. It is passed
// around the application to avoid direct dependencies on external systems,
// and make testing easier.
type Context struct {
	Ctx     context.Context // global context
	FS      vfs.FileSystem  // filesystem
	Logger  *slog.Logger    // global logger
	Config  *config.Config
	DataDir string

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Metadata
	Version string
}

// StorePath returns the configured notes database path, or the default one
// inside the data directory.
func (c *Context) StorePath() string {
	if c.Config != nil && c.Config.Store.Path.Valid {
		return c.Config.Store.Path.V
	}
	return filepath.Join(c.DataDir, "notes.db")
}
