// Package testutil provides the shared test environment and fakes used
// by the command and store tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dotstore/pkg/config"
	"github.com/arthur-debert/dotstore/pkg/filesystem"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// TestEnvironment is an isolated home + store rooted in a temp directory.
// The store root is only a path until SeedStore or a fake clone creates it.
type TestEnvironment struct {
	HomeDir    string
	StoreRoot  string
	ConfigPath string
	FS         types.FS
}

// NewTestEnvironment creates an isolated environment under t.TempDir
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	homeDir := filepath.Join(root, "home")
	if err := os.MkdirAll(homeDir, 0755); err != nil {
		t.Fatalf("failed to create home dir: %v", err)
	}

	return &TestEnvironment{
		HomeDir:    homeDir,
		StoreRoot:  filepath.Join(root, "store"),
		ConfigPath: filepath.Join(root, "config", "dotstore.toml"),
		FS:         filesystem.NewOS(),
	}
}

// SeedStore creates the store directory with the given files. Keys are
// store-relative paths; a trailing slash creates an empty directory. A
// .git directory is always created so the store looks like a clone.
func (e *TestEnvironment) SeedStore(t *testing.T, files map[string]string) {
	t.Helper()
	SeedTree(t, e.StoreRoot, files)
	if err := os.MkdirAll(filepath.Join(e.StoreRoot, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git dir: %v", err)
	}
}

// WriteConfig persists a config file pointing at the environment's store
func (e *TestEnvironment) WriteConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{Store: config.StoreConfig{
		Root:   e.StoreRoot,
		Remote: "https://example.com/dotfiles.git",
	}}
	if err := config.SaveTo(e.FS, e.ConfigPath, cfg); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// WriteHomeFile creates a regular file under the environment's home dir
// and returns its absolute path
func (e *TestEnvironment) WriteHomeFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.HomeDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// SeedTree creates files under root. Keys are relative paths; a trailing
// slash creates an empty directory.
func SeedTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", root, err)
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create dir %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}
