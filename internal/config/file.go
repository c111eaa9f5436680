package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ServerConfig locates the Tari Universe executable.
type ServerConfig struct {
	Path              string   `toml:"path"`
	Args              []string `toml:"args"`
	CloseGraceSeconds int      `toml:"closeGraceSeconds"`
}

// ClientConfig sets the identity and timing this client uses.
type ClientConfig struct {
	Name               string `toml:"name"`
	Version            string `toml:"version"`
	ReadTimeoutSeconds int    `toml:"readTimeoutSeconds"`
}

// AuditConfig controls tool call auditing.
type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"dbPath"`
}

// EventsConfig locates the WebSocket event stream.
type EventsConfig struct {
	URL string `toml:"url"`
}

// LoggingConfig sets the log level: "debug", "info", "warn", or "error".
type LoggingConfig struct {
	Level string `toml:"level"`
}

// FileConfig is the on-disk configuration for the CLI.
type FileConfig struct {
	Server  ServerConfig  `toml:"server"`
	Client  ClientConfig  `toml:"client"`
	Audit   AuditConfig   `toml:"audit"`
	Events  EventsConfig  `toml:"events"`
	Logging LoggingConfig `toml:"logging"`
}

// DefaultConfigPath returns the conventional config location,
// $XDG_CONFIG_HOME/tari-mcp/config.toml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "tari-mcp", "config.toml")
}

// LoadFile reads a TOML config from path. An empty path falls back to
// DefaultConfigPath, and a missing default file yields the zero config
// rather than an error; an explicit path must exist.
func LoadFile(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &cfg, nil
		}

		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}
