// pkg/commands/add/add_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Fake git client, temp filesystem
// PURPOSE: Test add orchestration: copy into store, symlink back, local commit

package add_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstore/pkg/commands/add"
	"github.com/arthur-debert/dotstore/pkg/errors"
	"github.com/arthur-debert/dotstore/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options(env *testutil.TestEnvironment, fakeGit *testutil.FakeGit, path string) add.Options {
	return add.Options{
		Path:       path,
		HomeDir:    env.HomeDir,
		ConfigPath: env.ConfigPath,
		FileSystem: env.FS,
		Git:        fakeGit,
	}
}

func TestAdd_File(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{".bashrc": "export PATH"})
	env.WriteConfig(t)

	vimrc := env.WriteHomeFile(t, ".vimrc", "set nocompatible")
	fakeGit := &testutil.FakeGit{}

	result, err := add.Add(context.Background(), options(env, fakeGit, vimrc))
	require.NoError(t, err)
	assert.Equal(t, ".vimrc", result.RelPath)
	assert.False(t, result.IsDir)

	// the store holds a byte-identical copy
	content, err := os.ReadFile(filepath.Join(env.StoreRoot, ".vimrc"))
	require.NoError(t, err)
	assert.Equal(t, "set nocompatible", string(content))

	// the original is now a symlink into the store
	target, err := os.Readlink(vimrc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.StoreRoot, ".vimrc"), target)

	// the new entry was committed locally
	require.Len(t, fakeGit.CommitCalls, 1)
	commit := fakeGit.CommitCalls[0]
	assert.Equal(t, env.StoreRoot, commit.Dir)
	assert.Equal(t, []string{".vimrc"}, commit.Paths)
	assert.Equal(t, "Add .vimrc", commit.Message)
}

func TestAdd_Folder(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{".bashrc": "export PATH"})
	env.WriteConfig(t)

	env.WriteHomeFile(t, ".config/nvim/init.vim", "set number")
	env.WriteHomeFile(t, ".config/nvim/lua/opts.lua", "-- opts")
	nvimDir := filepath.Join(env.HomeDir, ".config", "nvim")
	fakeGit := &testutil.FakeGit{}

	result, err := add.Add(context.Background(), options(env, fakeGit, nvimDir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".config", "nvim"), result.RelPath)
	assert.True(t, result.IsDir)

	// the whole subtree was copied, intermediate store directories included
	content, err := os.ReadFile(filepath.Join(env.StoreRoot, ".config", "nvim", "lua", "opts.lua"))
	require.NoError(t, err)
	assert.Equal(t, "-- opts", string(content))

	// only the top-level directory became a symlink
	target, err := os.Readlink(nvimDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.StoreRoot, ".config", "nvim"), target)

	info, err := os.Lstat(filepath.Join(env.StoreRoot, ".config", "nvim", "init.vim"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink, "files inside the tree stay regular files")

	require.Len(t, fakeGit.CommitCalls, 1)
	assert.Equal(t, []string{filepath.Join(".config", "nvim")}, fakeGit.CommitCalls[0].Paths)
}

func TestAdd_AlreadyTracked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{".vimrc": "set nocompatible"})
	env.WriteConfig(t)

	// simulate a previously added entry
	vimrc := filepath.Join(env.HomeDir, ".vimrc")
	require.NoError(t, os.Symlink(filepath.Join(env.StoreRoot, ".vimrc"), vimrc))
	fakeGit := &testutil.FakeGit{}

	_, err := add.Add(context.Background(), options(env, fakeGit, vimrc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyTracked))

	// no mutation: symlink intact, nothing committed
	target, err := os.Readlink(vimrc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.StoreRoot, ".vimrc"), target)
	assert.Empty(t, fakeGit.CommitCalls)
}

func TestAdd_SourceNotFound(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{})
	env.WriteConfig(t)
	fakeGit := &testutil.FakeGit{}

	_, err := add.Add(context.Background(), options(env, fakeGit, filepath.Join(env.HomeDir, ".missing")))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
	assert.Empty(t, fakeGit.CommitCalls)
}

func TestAdd_NameCollision(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{".vimrc": "store version"})
	env.WriteConfig(t)

	vimrc := env.WriteHomeFile(t, ".vimrc", "local version")
	fakeGit := &testutil.FakeGit{}

	_, err := add.Add(context.Background(), options(env, fakeGit, vimrc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNameCollision))

	// neither side was touched
	content, err := os.ReadFile(filepath.Join(env.StoreRoot, ".vimrc"))
	require.NoError(t, err)
	assert.Equal(t, "store version", string(content))

	info, err := os.Lstat(vimrc)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
	assert.Empty(t, fakeGit.CommitCalls)
}

func TestAdd_PathOutsideHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{})
	env.WriteConfig(t)

	outside := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(outside, []byte("127.0.0.1"), 0644))

	_, err := add.Add(context.Background(), options(env, &testutil.FakeGit{}, outside))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAdd_ForeignSymlink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SeedStore(t, map[string]string{})
	env.WriteConfig(t)

	link := filepath.Join(env.HomeDir, ".linked")
	require.NoError(t, os.Symlink("/etc/hosts", link))

	_, err := add.Add(context.Background(), options(env, &testutil.FakeGit{}, link))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAdd_NoStoreInitialized(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	vimrc := env.WriteHomeFile(t, ".vimrc", "set nocompatible")

	_, err := add.Add(context.Background(), options(env, &testutil.FakeGit{}, vimrc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreNotFound))
}
