package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	assert.NoError(t, EnsureDir(dir))
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "part.stl")
	require.NoError(t, os.WriteFile(file, []byte("solid"), 0o644))

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "absent.stl")))
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "profiles"), ExpandTilde("~/profiles"))
	assert.Equal(t, "/etc/duplex_profile.ini", ExpandTilde("/etc/duplex_profile.ini"))
}

func TestExpandTilde_BareTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
}

func TestExpandTilde_UserFormIsLeftAlone(t *testing.T) {
	// "~name" is not a home-relative path; it must pass through whole, not
	// lose its leading characters.
	assert.Equal(t, "~profiles", ExpandTilde("~profiles"))
	assert.Equal(t, "~op/profiles", ExpandTilde("~op/profiles"))
}
