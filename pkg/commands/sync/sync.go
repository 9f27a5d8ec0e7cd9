package sync

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

// Options holds options for the sync operation
type Options struct {
	// HomeDir overrides the home directory, for tests
	HomeDir string

	// ConfigPath overrides the persisted config location, for tests
	ConfigPath string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Git allows injecting a version-control client for testing
	Git git.Client
}

// Sync pulls the latest state of the remote into the store and
// re-materializes the home-directory symlinks. When the pull fails no
// materialization is attempted, so a partial pull never reaches the
// filesystem layer.
func Sync(ctx context.Context, opts Options) (*types.SyncResult, error) {
	logger := logging.GetLogger("commands.sync")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	gitClient := opts.Git
	if gitClient == nil {
		gitClient = git.New()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.ConfigFilePath()
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, err
	}

	if info, err := fsys.Lstat(cfg.Store.Root); err != nil || !info.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrInternal, "cannot stat store %s", cfg.Store.Root)
		}
		return nil, errors.Newf(errors.ErrStoreNotFound, "store directory %s is missing", cfg.Store.Root)
	}

	logger.Info().Str("store", cfg.Store.Root).Msg("Syncing store")

	if err := gitClient.Pull(ctx, cfg.Store.Root); err != nil {
		return nil, err
	}

	homeDir := opts.HomeDir
	if homeDir == "" {
		homeDir, err = paths.HomeDir()
		if err != nil {
			return nil, err
		}
	}

	linked, err := store.Materialize(fsys, cfg.Store.Root, homeDir)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("entries", len(linked)).Msg("Store synced")

	return &types.SyncResult{
		StoreRoot: cfg.Store.Root,
		Linked:    linked,
	}, nil
}
