// Package config resolves an objectstore.Store's root/alt_root/name/
// algorithm plus logging setup from a YAML document, optionally
// overridden by BATCHVAULT_* environment variables. It is trimmed of
// the versioned-parser/storage-driver-polymorphism machinery an HTTP
// registry with pluggable auth, middleware, and notification
// endpoints would carry -- none of which this library-shaped store
// has a use for.
package config

import (
	"fmt"
	"io"
	"strings"
)

// Loglevel is one of error/warn/info/debug, matching logrus's levels.
type Loglevel string

// UnmarshalYAML lowercases and validates the level.
func (l *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.ToLower(s)
	switch s {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %q, must be one of [error, warn, info, debug]", s)
	}
	*l = Loglevel(s)
	return nil
}

// Log configures the structured logging subsystem.
type Log struct {
	// Level is the granularity at which store operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides logrus's default text formatter. One of
	// "text" or "json".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields are static key/value pairs attached to every log entry.
	Fields map[string]interface{} `yaml:"fields,omitempty"`
}

// Store configures the blob backend(s) and digest algorithm an
// objectstore.Store is opened with.
type Store struct {
	// Root is the primary backend URL, e.g. "hfs:///var/lib/batchvault"
	// or "memory://".
	Root string `yaml:"root"`

	// AltRoot, if set, is opened as the alternate backend that
	// receives bulk file/table payloads.
	AltRoot string `yaml:"altroot,omitempty"`

	// Name is the store's human-readable label; must match the
	// persisted name on reopen.
	Name string `yaml:"name"`

	// UUID, if set, reopens an existing store instead of creating one.
	UUID string `yaml:"uuid,omitempty"`

	// Algorithm is the digest algorithm new content is hashed with.
	// Defaults to "sha1" when empty, per the digest service's default.
	Algorithm string `yaml:"algorithm,omitempty"`
}

// Configuration is the top-level document read from a YAML config
// file, optionally overridden by BATCHVAULT_<FIELD>[_<SUBFIELD>...]
// environment variables.
type Configuration struct {
	Log   Log   `yaml:"log,omitempty"`
	Store Store `yaml:"store"`
}

// Parse reads a Configuration from rd, applying environment overrides
// under the "BATCHVAULT" prefix.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	c := &Configuration{
		Log: Log{Level: "info"},
		Store: Store{
			Algorithm: "sha1",
		},
	}
	if err := newParser("batchvault").parse(in, c); err != nil {
		return nil, err
	}

	if c.Store.Root == "" {
		return nil, fmt.Errorf("config: store.root is required")
	}
	if c.Store.Name == "" {
		return nil, fmt.Errorf("config: store.name is required")
	}
	return c, nil
}
