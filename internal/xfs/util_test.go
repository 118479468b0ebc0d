package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models"), ExpandTilde("~/models"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "relative/path", ExpandTilde("relative/path"))
}

func TestExpandTilde_BareTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
}

func TestExpandTilde_OtherUser(t *testing.T) {
	// "~name" means another user's home; we do not resolve it.
	assert.Equal(t, "~alice", ExpandTilde("~alice"))
	assert.Equal(t, "~alice/models", ExpandTilde("~alice/models"))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, IsRegularFile(path))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "missing")))
}
