package add

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotstore/pkg/config"
	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/filesystem"
	"github.com/arthur-debert/dotstore/pkg/git"
	"github.com/arthur-debert/dotstore/pkg/logging"
	"github.com/arthur-debert/dotstore/pkg/paths"
	"github.com/arthur-debert/dotstore/pkg/store"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// Options holds options for the add operation
type Options struct {
	// Path is the file or directory to start tracking; ~ is expanded
	Path string

	// HomeDir overrides the home directory, for tests
	HomeDir string

	// ConfigPath overrides the persisted config location, for tests
	ConfigPath string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Git allows injecting a version-control client for testing
	Git git.Client
}

// Add copies a file or directory tree into the store, replaces the
// original with a symlink into the store, and commits the new entry
// locally. Pushing is deliberately left to the user so secrets are never
// published silently.
func Add(ctx context.Context, opts Options) (*types.AddResult, error) {
	logger := logging.GetLogger("commands.add")

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
	storeRoot := cfg.Store.Root

	if info, err := fsys.Lstat(storeRoot); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrStoreNotFound, "store directory %s is missing", storeRoot)
	}

	homeDir := opts.HomeDir
	if homeDir == "" {
		homeDir, err = paths.HomeDir()
		if err != nil {
			return nil, err
		}
	}

	sourcePath := paths.ExpandHome(opts.Path)

	sourceInfo, err := fsys.Lstat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrSourceNotFound, "source path %s does not exist", sourcePath)
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot stat %s", sourcePath)
	}

	if sourceInfo.Mode()&os.ModeSymlink != 0 {
		tracked, err := store.IsTracked(fsys, storeRoot, sourcePath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "cannot inspect symlink %s", sourcePath)
		}
		if tracked {
			return nil, errors.Newf(errors.ErrAlreadyTracked, "%s is already tracked by the store", sourcePath)
		}
		return nil, errors.Newf(errors.ErrInvalidInput, "refusing to add symlink %s", sourcePath)
	}

	relPath, err := paths.RelToHome(homeDir, sourcePath)
	if err != nil {
		return nil, err
	}

	destPath := filepath.Join(storeRoot, relPath)
	if _, err := fsys.Lstat(destPath); err == nil {
		return nil, errors.Newf(errors.ErrNameCollision, "store already has an entry at %s", relPath)
	}

	// Intermediate store directories mirror the source hierarchy
	if err := fsys.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create store directory for %s", relPath)
	}

	if sourceInfo.IsDir() {
		err = store.CopyTree(fsys, sourcePath, destPath)
	} else {
		err = store.CopyFile(fsys, sourcePath, destPath)
	}
	if err != nil {
		return nil, err
	}

	if err := replaceWithSymlink(fsys, logger, sourcePath, destPath, sourceInfo.IsDir()); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Add %s", relPath)
	if err := gitClient.Commit(ctx, storeRoot, []string{relPath}, message); err != nil {
		return nil, err
	}

	logger.Info().Str("source", sourcePath).Str("entry", relPath).Msg("Path added to store")

	return &types.AddResult{
		SourcePath: sourcePath,
		StorePath:  destPath,
		RelPath:    relPath,
		IsDir:      sourceInfo.IsDir(),
	}, nil
}

// replaceWithSymlink removes the original path and links it into the
// store. The store copy already exists at this point, so on symlink
// failure the original is restored from the copy.
func replaceWithSymlink(fsys types.FS, logger zerolog.Logger, sourcePath, destPath string, isDir bool) error {
	if err := fsys.RemoveAll(sourcePath); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot remove original %s", sourcePath)
	}

	if err := fsys.Symlink(destPath, sourcePath); err != nil {
		logger.Error().Err(err).Str("source", sourcePath).Str("destination", destPath).
			Msg("Failed to create symlink, restoring original from store copy")

		var restoreErr error
		if isDir {
			restoreErr = store.CopyTree(fsys, destPath, sourcePath)
		} else {
			restoreErr = store.CopyFile(fsys, destPath, sourcePath)
		}
		if restoreErr != nil {
			logger.Error().Err(restoreErr).Msg("Failed to restore original")
		}
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s", sourcePath)
	}
	return nil
}
