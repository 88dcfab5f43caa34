// Package config loads the optional notemark configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const fileName = "config.toml"

// Config holds the settings the CLI reads from disk. Flags override every field.
type Config struct {
	Theme     string            `toml:"theme"`
	Width     int               `toml:"width"`
	Format    string            `toml:"format"`
	RawHTML   bool              `toml:"raw_html"`
	Container string            `toml:"container"`
	SoftWrap  bool              `toml:"soft_wrap"`
	Database  string            `toml:"database"`
	Aliases   map[string]string `toml:"aliases"`
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:  "auto",
		Format: "ansi",
	}
}

// Root returns the notemark directory under the user configuration directory.
func Root() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notemark"), nil
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, fileName), nil
}

// DefaultDatabase returns the location of the notes database.
func DefaultDatabase() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "notes.db"), nil
}

// Load reads the file at path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}
