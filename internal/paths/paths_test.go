package paths_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mathdeck/internal/paths"
)

func TestUserDBPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("per-user layout only implemented for linux")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	dbPath, err := paths.UserDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "mathdeck", "user0", "user0.db"), dbPath)

	// The user dir and its media subdirectory are created on demand.
	mediaDir, err := paths.UserMediaDir()
	require.NoError(t, err)
	info, err := os.Stat(mediaDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListUsers(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("per-user layout only implemented for linux")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	users, err := paths.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = paths.UserDir()
	require.NoError(t, err)

	users, err = paths.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, []string{"user0"}, users)
}
