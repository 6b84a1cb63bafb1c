// Package config loads rtinstrument.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up in the working directory
const FileName = "rtinstrument.toml"

// Config holds file-level defaults; command line flags override them.
type Config struct {
	Archive     string    `toml:"archive"`
	Target      string    `toml:"target"`
	Threads     int       `toml:"threads"`
	Transformer string    `toml:"transformer"`
	Blacklist   Blacklist `toml:"blacklist"`

	// Dir is the directory containing the file (set at load time).
	Dir string `toml:"-"`
}

// Blacklist configures excluded entry names.
type Blacklist struct {
	Patterns []string `toml:"patterns"`
	File     string   `toml:"file"`
	// NoDefaults drops the built-in patterns (META-INF/)
	NoDefaults bool `toml:"no-defaults"`
}

// Load parses a configuration file. Relative paths inside it are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	if c.Threads < 0 {
		return nil, fmt.Errorf("%s: threads must not be negative", path)
	}

	c.Archive = c.resolve(c.Archive)
	c.Target = c.resolve(c.Target)
	c.Blacklist.File = c.resolve(c.Blacklist.File)

	return &c, nil
}

// LoadDefault loads FileName from dir. Returns nil if no file exists.
func LoadDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return Load(path)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
