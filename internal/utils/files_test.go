package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

func TestSafeWriteFileCreatesParentAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	require.NoError(t, utils.SafeWriteFile(path, []byte("one")))
	require.NoError(t, utils.SafeWriteFile(path, []byte("two")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := utils.ExpandHome("~/.writeit")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".writeit"), got)

	got, err = utils.ExpandHome("/tmp/x/../y")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/y", got)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "post.md", utils.SafeFileName("../../post.md", "x"))
	assert.Equal(t, "x", utils.SafeFileName("  ", "x"))
}
