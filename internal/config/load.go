package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	yaml "gopkg.in/yaml.v3"

	"github.com/Spyabo/CLI-Chess/internal/errors"
)

// RelPath is the config file location relative to the XDG config
// directories.
const RelPath = "cli-chess/config.yaml"

// Load reads the config file at path over the defaults. An empty path
// searches the XDG config directories and falls back to the defaults when
// no file exists. The result is validated.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err != nil {
			return cfg, cfg.Validate()
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode unmarshals YAML over cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return nil
}

// Save writes cfg as YAML to path, or to the XDG config directory when
// path is empty, and returns the path written.
func Save(cfg *Config, path string) (string, error) {
	if path == "" {
		p, err := xdg.ConfigFile(RelPath)
		if err != nil {
			return "", errors.Wrap(err, "locate config file")
		}
		path = p
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write config %s", path)
	}
	return path, nil
}
