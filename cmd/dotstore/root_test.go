// cmd/dotstore/root_test.go
// TEST TYPE: CLI
// DEPENDENCIES: Cobra command tree
// PURPOSE: Verify flag surface and dispatch of the root command

package dotstore_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotstore/cmd/dotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_FlagSurface(t *testing.T) {
	cmd := dotstore.NewRootCmd()

	for _, name := range []string{"init", "sync", "add", "directory"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCmd_NoOperation(t *testing.T) {
	cmd := dotstore.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no operation specified")
}

func TestRootCmd_MutuallyExclusiveOperations(t *testing.T) {
	cmd := dotstore.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sync", "--add", "~/.vimrc"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	cmd := dotstore.NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dotstore version")
}
