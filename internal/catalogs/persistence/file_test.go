package persistence_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/coursemap/internal/catalogs/persistence"
	"github.com/agentstation/coursemap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "catalog.bin")

	require.NoError(t, persistence.WriteFile(path, []byte("first")))
	require.NoError(t, persistence.WriteFile(path, []byte("second")))

	data, err := persistence.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadFileMissing(t *testing.T) {
	_, err := persistence.ReadFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}

func TestEmptyPath(t *testing.T) {
	var ce *errors.ConfigError
	assert.ErrorAs(t, persistence.WriteFile("", nil), &ce)
	_, err := persistence.ReadFile("")
	assert.ErrorAs(t, err, &ce)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := persistence.Exists(filepath.Join(dir, "nope.bin"))
	require.NoError(t, err)
	assert.False(t, ok)

	path := filepath.Join(dir, "yes.bin")
	require.NoError(t, persistence.WriteFile(path, []byte{0}))
	ok, err = persistence.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = persistence.Exists(dir)
	assert.True(t, errors.IsIO(err), "a directory is not a catalog file")
}
