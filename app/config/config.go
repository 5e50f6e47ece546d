// Package config handles the application configuration, persisted as a JSON
// file on a virtual filesystem.
package config

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Config represents the application configuration, backed by a filesystem
// for persistence.
type Config struct {
	Server Server
	Store  Store
	Auth   Auth

	fs   vfs.FileSystem
	path string
}

// Server defines configuration options specific to the HTTP server.
type Server struct {
	// Address is the network address in [host]:port format the server will
	// listen on.
	Address sql.Null[string] `json:"address"`
}

// Store defines configuration options for the notes database.
type Store struct {
	// Path is the filesystem path of the SQLite database.
	Path sql.Null[string] `json:"path"`
}

// Auth defines configuration options for API authentication and
// authorization.
type Auth struct {
	// Token is the Base58-encoded bearer token required by mutating API
	// endpoints. Empty disables authentication.
	Token sql.Null[string] `json:"token"`
	// Roles maps role IDs to allowed action globs, e.g. "notes:*".
	Roles map[string][]string `json:"roles"`
}

// NewConfig creates a new Config instance with the specified filesystem and
// configuration file path.
func NewConfig(fs vfs.FileSystem, path string) *Config {
	return &Config{fs: fs, path: path}
}

// Load reads and parses the configuration file from the filesystem. If the
// file doesn't exist, it initializes with an empty configuration.
func (c *Config) Load() error {
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed creating configuration directory: %w", err)
	}

	configJSON, err := vfs.ReadFile(c.fs, c.path)
	if err != nil && !vfs.IsErrNotExist(err) {
		return fmt.Errorf("failed reading configuration file: %w", err)
	}

	// Ensure that unmarshalling JSON doesn't fail if the file doesn't exist or is empty.
	if len(configJSON) == 0 {
		configJSON = []byte("{}")
	}

	if err = json.Unmarshal(configJSON, c); err != nil {
		return fmt.Errorf("failed parsing configuration file: %w", err)
	}

	return nil
}

// Path returns the filesystem path where the configuration is stored.
func (c *Config) Path() string {
	return c.path
}

// Save writes the current configuration to the filesystem as JSON.
func (c *Config) Save() error {
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed creating configuration directory: %w", err)
	}
	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed serializing configuration data: %w", err)
	}
	if err = vfs.WriteFile(c.fs, c.path, configJSON, 0o644); err != nil {
		return fmt.Errorf("failed writing configuration file: %w", err)
	}

	return nil
}

type cfgWrapper struct {
	Server srvCfgWrapper   `json:"server"`
	Store  storeCfgWrapper `json:"store"`
	Auth   authCfgWrapper  `json:"auth"`
}
type srvCfgWrapper struct {
	Address string `json:"address,omitempty"`
}
type storeCfgWrapper struct {
	Path string `json:"path,omitempty"`
}
type authCfgWrapper struct {
	Token string              `json:"token,omitempty"`
	Roles map[string][]string `json:"roles,omitempty"`
}

// MarshalJSON implements custom JSON marshaling to convert sql.Null values
// to their underlying types, omitting invalid/null fields from the output.
func (c Config) MarshalJSON() ([]byte, error) {
	var w cfgWrapper

	if c.Server.Address.Valid {
		w.Server.Address = c.Server.Address.V
	}
	if c.Store.Path.Valid {
		w.Store.Path = c.Store.Path.V
	}
	if c.Auth.Token.Valid {
		w.Auth.Token = c.Auth.Token.V
	}
	w.Auth.Roles = c.Auth.Roles

	//nolint:wrapcheck // Wrapped by the caller.
	return json.Marshal(w)
}

// UnmarshalJSON implements custom JSON unmarshaling to convert plain values
// into sql.Null fields, treating absent/empty values as null.
func (c *Config) UnmarshalJSON(data []byte) error {
	var w cfgWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		//nolint:wrapcheck // Wrapped by the caller.
		return err
	}

	if w.Server.Address != "" {
		c.Server.Address = sql.Null[string]{V: w.Server.Address, Valid: true}
	}
	if w.Store.Path != "" {
		c.Store.Path = sql.Null[string]{V: w.Store.Path, Valid: true}
	}
	if w.Auth.Token != "" {
		c.Auth.Token = sql.Null[string]{V: w.Auth.Token, Valid: true}
	}
	c.Auth.Roles = w.Auth.Roles

	return nil
}
