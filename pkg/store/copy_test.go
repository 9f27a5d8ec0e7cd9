// pkg/store/copy_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Temp filesystem
// PURPOSE: Verify file and tree copies preserve content, modes and symlinks

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstore/pkg/filesystem"
	"github.com/arthur-debert/dotstore/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile_PreservesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	dst := filepath.Join(dir, "copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho hi\n"), 0755))

	require.NoError(t, store.CopyFile(filesystem.NewOS(), src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(content))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyTree_Nested(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nvim")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "lua", "plugins"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "init.lua"), []byte("-- init"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lua", "plugins", "lsp.lua"), []byte("-- lsp"), 0644))
	require.NoError(t, os.Symlink("init.lua", filepath.Join(src, "init-link")))

	dst := filepath.Join(dir, "copy")
	require.NoError(t, store.CopyTree(filesystem.NewOS(), src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "lua", "plugins", "lsp.lua"))
	require.NoError(t, err)
	assert.Equal(t, "-- lsp", string(content))

	// symlinks are reproduced as symlinks, not followed
	target, err := os.Readlink(filepath.Join(dst, "init-link"))
	require.NoError(t, err)
	assert.Equal(t, "init.lua", target)
}
