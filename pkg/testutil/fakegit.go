package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// CommitCall records one Commit invocation on the fake
type CommitCall struct {
	Dir     string
	Paths   []string
	Message string
}

// FakeGit implements git.Client without a git binary. Clone and Pull
// materialize seeded trees on disk so the filesystem layer behaves as it
// would after the real subprocess calls.
type FakeGit struct {
	// CloneFiles are written under the clone dir (relative paths, trailing
	// slash means directory)
	CloneFiles map[string]string

	// PullFiles are written into the store on Pull, simulating entries
	// that arrived from the remote
	PullFiles map[string]string

	// Errors to simulate failures
	CloneErr  error
	PullErr   error
	CommitErr error

	// Call records
	CloneCalls  []string
	PullCalls   []string
	CommitCalls []CommitCall
}

// Clone implements git.Client.Clone
func (f *FakeGit) Clone(ctx context.Context, remoteURL, dir string) error {
	f.CloneCalls = append(f.CloneCalls, remoteURL)
	if f.CloneErr != nil {
		return f.CloneErr
	}
	if err := writeTree(dir, f.CloneFiles); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

// Pull implements git.Client.Pull
func (f *FakeGit) Pull(ctx context.Context, dir string) error {
	f.PullCalls = append(f.PullCalls, dir)
	if f.PullErr != nil {
		return f.PullErr
	}
	return writeTree(dir, f.PullFiles)
}

// Commit implements git.Client.Commit
func (f *FakeGit) Commit(ctx context.Context, dir string, relPaths []string, message string) error {
	f.CommitCalls = append(f.CommitCalls, CommitCall{Dir: dir, Paths: relPaths, Message: message})
	return f.CommitErr
}

func writeTree(root string, files map[string]string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
