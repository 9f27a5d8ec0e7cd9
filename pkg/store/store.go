// Package store implements tracked-entry enumeration and symlink
// materialization: the rules by which the store's contents are mirrored
// into the home directory.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/logging"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// Names inside the store that are never tracked entries
var ignoredNames = map[string]bool{
	".git": true,
}

// Entries lists the top-level tracked entries of the store
func Entries(fsys types.FS, storeRoot string) ([]types.Entry, error) {
	dirEntries, err := fsys.ReadDir(storeRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreNotFound,
			"cannot read store directory %s", storeRoot)
	}

	var entries []types.Entry
	for _, de := range dirEntries {
		if ignoredNames[de.Name()] {
			continue
		}
		entries = append(entries, types.Entry{
			Name:  de.Name(),
			IsDir: de.IsDir(),
		})
	}
	return entries, nil
}

// Materialize mirrors every tracked entry into the home directory as a
// symlink pointing into the store. The walk folds directories the way
// stow does: a store directory whose home counterpart is a real directory
// is not replaced wholesale; instead its children are materialized inside
// it. That keeps shared containers like ~/.config usable for untracked
// files while still representing ~/.config/nvim as a single symlink.
//
// A home path shadowed by a regular file is replaced, with a warning
// logged. Re-running against an unchanged store is a no-op.
func Materialize(fsys types.FS, storeRoot, homeDir string) ([]types.LinkedEntry, error) {
	entries, err := Entries(fsys, storeRoot)
	if err != nil {
		return nil, err
	}

	var linked []types.LinkedEntry
	for _, entry := range entries {
		if err := materializePath(fsys, storeRoot, homeDir, entry.Name, &linked); err != nil {
			return linked, err
		}
	}
	return linked, nil
}

func materializePath(fsys types.FS, storeRoot, homeDir, rel string, linked *[]types.LinkedEntry) error {
	logger := logging.GetLogger("store.materialize")

	storePath := filepath.Join(storeRoot, rel)
	linkPath := filepath.Join(homeDir, rel)

	storeInfo, err := fsys.Lstat(storePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot stat store entry %s", storePath)
	}

	linkInfo, err := fsys.Lstat(linkPath)
	switch {
	case err != nil && os.IsNotExist(err):
		return createLink(fsys, storePath, linkPath, rel, storeInfo.IsDir(), true, linked)

	case err != nil:
		return errors.Wrapf(err, errors.ErrInternal, "cannot stat %s", linkPath)

	case linkInfo.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(linkPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot read symlink %s", linkPath)
		}
		if filepath.Clean(target) == filepath.Clean(storePath) {
			*linked = append(*linked, types.LinkedEntry{
				Entry:     types.Entry{Name: rel, IsDir: storeInfo.IsDir()},
				LinkPath:  linkPath,
				StorePath: storePath,
				Created:   false,
			})
			return nil
		}
		logger.Warn().Str("link", linkPath).Str("target", target).
			Msg("Replacing symlink pointing outside the store")
		if err := fsys.Remove(linkPath); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot remove stale symlink %s", linkPath)
		}
		return createLink(fsys, storePath, linkPath, rel, storeInfo.IsDir(), true, linked)

	case linkInfo.IsDir() && storeInfo.IsDir():
		// Shared container directory: materialize the children inside it
		children, err := fsys.ReadDir(storePath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot read store directory %s", storePath)
		}
		for _, child := range children {
			if ignoredNames[child.Name()] {
				continue
			}
			if err := materializePath(fsys, storeRoot, homeDir, filepath.Join(rel, child.Name()), linked); err != nil {
				return err
			}
		}
		return nil

	default:
		logger.Warn().Str("path", linkPath).
			Msg("Replacing existing file with symlink into the store")
		if err := fsys.RemoveAll(linkPath); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot remove %s", linkPath)
		}
		return createLink(fsys, storePath, linkPath, rel, storeInfo.IsDir(), true, linked)
	}
}

func createLink(fsys types.FS, storePath, linkPath, rel string, isDir, created bool, linked *[]types.LinkedEntry) error {
	if err := fsys.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", linkPath)
	}
	if err := fsys.Symlink(storePath, linkPath); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s", linkPath)
	}
	*linked = append(*linked, types.LinkedEntry{
		Entry:     types.Entry{Name: rel, IsDir: isDir},
		LinkPath:  linkPath,
		StorePath: storePath,
		Created:   created,
	})
	return nil
}

// IsTracked reports whether path is a symlink resolving into the store
func IsTracked(fsys types.FS, storeRoot, path string) (bool, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return false, err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}
	target, err := fsys.Readlink(path)
	if err != nil {
		return false, err
	}
	target = filepath.Clean(target)
	root := filepath.Clean(storeRoot)
	return target == root || strings.HasPrefix(target, root+string(filepath.Separator)), nil
}
