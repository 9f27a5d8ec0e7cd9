// Package config persists the one piece of cross-invocation state dotstore
// needs: where the store lives and which remote it was initialized from.
// The file is TOML under the XDG config directory, loaded with koanf.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/paths"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// StoreConfig identifies the initialized store
type StoreConfig struct {
	// Root is the absolute path of the store directory
	Root string `koanf:"root" toml:"root"`

	// Remote is the URL the store was cloned from. Informational: git's
	// own remote config is authoritative.
	Remote string `koanf:"remote" toml:"remote"`
}

// Config is the root of the persisted configuration file
type Config struct {
	Store StoreConfig `koanf:"store" toml:"store"`
}

// Load reads the persisted configuration. A missing file means no store
// has been initialized yet and surfaces as STORE_NOT_FOUND.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFilePath())
}

// LoadFrom reads the persisted configuration from an explicit path
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrStoreNotFound,
				"no store initialized (config file %s not found)", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse config file %s", path)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "invalid config file %s", path)
	}

	if cfg.Store.Root == "" {
		return nil, errors.Newf(errors.ErrStoreNotFound,
			"config file %s does not name a store root", path)
	}

	return &cfg, nil
}

// Save writes the configuration, creating the config directory as needed
func Save(fs types.FS, cfg *Config) error {
	return SaveTo(fs, paths.ConfigFilePath(), cfg)
}

// SaveTo writes the configuration to an explicit path
func SaveTo(fs types.FS, path string, cfg *Config) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create config directory %s", dir)
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config file %s", path)
	}

	return nil
}
