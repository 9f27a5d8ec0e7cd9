package store

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/types"
)

// CopyFile copies a single regular file, preserving its permission bits
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", src)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot read %s", src)
	}

	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot write %s", dst)
	}
	return nil
}

// CopyTree recursively copies a directory tree, preserving permission bits
// and reproducing symlinks as symlinks
func CopyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", src)
	}

	if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dst)
	}

	children, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "cannot read directory %s", src)
	}

	for _, child := range children {
		srcChild := filepath.Join(src, child.Name())
		dstChild := filepath.Join(dst, child.Name())

		childInfo, err := fsys.Lstat(srcChild)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "cannot stat %s", srcChild)
		}

		switch {
		case childInfo.Mode()&os.ModeSymlink != 0:
			target, err := fsys.Readlink(srcChild)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileCopy, "cannot read symlink %s", srcChild)
			}
			if err := fsys.Symlink(target, dstChild); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s", dstChild)
			}
		case childInfo.IsDir():
			if err := CopyTree(fsys, srcChild, dstChild); err != nil {
				return err
			}
		default:
			if err := CopyFile(fsys, srcChild, dstChild); err != nil {
				return err
			}
		}
	}
	return nil
}
