package initialize

import (
	"context"
	"os"

	"github.com/arthur-debert/dotstore/pkg/config"
	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/filesystem"
	"github.com/arthur-debert/dotstore/pkg/git"
	"github.com/arthur-debert/dotstore/pkg/logging"
	"github.com/arthur-debert/dotstore/pkg/paths"
	"github.com/arthur-debert/dotstore/pkg/store"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// Options holds options for the init operation
type Options struct {
	// RemoteURL is the repository to clone the store from
	RemoteURL string

	// TargetDir is where the store is cloned to; ~ is expanded
	TargetDir string

	// HomeDir overrides the home directory, for tests
	HomeDir string

	// ConfigPath overrides the persisted config location, for tests
	ConfigPath string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Git allows injecting a version-control client for testing
	Git git.Client
}

// Initialize clones the remote store into the target directory,
// materializes its entries into the home directory, and persists the
// store location for later invocations.
func Initialize(ctx context.Context, opts Options) (*types.InitResult, error) {
	logger := logging.GetLogger("commands.initialize")
	logger.Info().Str("remote", opts.RemoteURL).Str("target", opts.TargetDir).Msg("Initializing store")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	gitClient := opts.Git
	if gitClient == nil {
		gitClient = git.New()
	}

	if opts.RemoteURL == "" {
		return nil, errors.New(errors.ErrInvalidInput, "remote URL is required")
	}

	homeDir := opts.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = paths.HomeDir()
		if err != nil {
			return nil, err
		}
	}

	targetDir := paths.ExpandHome(opts.TargetDir)

	if err := checkTarget(fsys, targetDir); err != nil {
		return nil, err
	}

	// Partial clone state on failure is left as git leaves it
	if err := gitClient.Clone(ctx, opts.RemoteURL, targetDir); err != nil {
		return nil, err
	}

	linked, err := store.Materialize(fsys, targetDir, homeDir)
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.ConfigFilePath()
	}
	cfg := &config.Config{Store: config.StoreConfig{Root: targetDir, Remote: opts.RemoteURL}}
	if err := config.SaveTo(fsys, configPath, cfg); err != nil {
		return nil, err
	}

	logger.Info().Int("entries", len(linked)).Msg("Store initialized")

	return &types.InitResult{
		StoreRoot: targetDir,
		RemoteURL: opts.RemoteURL,
		Linked:    linked,
	}, nil
}

// checkTarget verifies the clone target does not exist or is an empty directory
func checkTarget(fsys types.FS, targetDir string) error {
	info, err := fsys.Lstat(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrInternal, "cannot stat %s", targetDir)
	}

	if !info.IsDir() {
		return errors.Newf(errors.ErrTargetExists, "target %s exists and is not a directory", targetDir)
	}

	children, err := fsys.ReadDir(targetDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot read %s", targetDir)
	}
	if len(children) > 0 {
		return errors.Newf(errors.ErrTargetNotEmpty, "target directory %s is not empty", targetDir)
	}
	return nil
}
