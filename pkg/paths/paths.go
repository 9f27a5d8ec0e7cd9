// Package paths provides centralized path handling for dotstore.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotstore/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotstore
	EnvConfigDir = "DOTSTORE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for dotstore-specific files
	AppDirName = "dotstore"

	// ConfigFileName is the name of the persisted store configuration file
	ConfigFileName = "dotstore.toml"

	// DefaultStoreDir is the default store location under the home directory
	DefaultStoreDir = ".dotstore"
)

// ConfigDir returns the directory holding the persisted store configuration.
// DOTSTORE_CONFIG_DIR takes precedence so tests can isolate themselves.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the full path of the persisted store configuration
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// HomeDir returns the current user's home directory
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}
	return home, nil
}

// ExpandHome expands a leading ~ or ~/ in path to the user's home directory.
// Paths without a ~ prefix are returned cleaned but otherwise untouched.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Clean(path)
}

// RelToHome returns path relative to the home directory. It fails with
// INVALID_INPUT when path does not lie under home, since the store layout
// mirrors the home directory.
func RelToHome(home, path string) (string, error) {
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "path %s is not under the home directory %s", path, home)
	}
	if rel == "." {
		return "", errors.New(errors.ErrInvalidInput, "cannot track the home directory itself")
	}
	return rel, nil
}
