package catalogs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testfile.bin")

	saved := newComsCatalog(catalogs.WithPath(path))
	require.NoError(t, saved.Save())

	loaded := catalogs.New(catalogs.WithPath(path))
	require.NoError(t, loaded.Load())

	assert.True(t, saved.Equal(loaded))
	assert.Equal(t, saved.String(), loaded.String())
	assert.Equal(t, path, loaded.Path())
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.bin")
	cat := newComsCatalog()
	require.NoError(t, cat.SaveTo(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.bin")
	require.NoError(t, newComsCatalog().SaveTo(path))

	cat := catalogs.New()
	cat.ReplaceAll(map[string]*catalogs.Department{
		"IEOR": catalogs.NewDepartment("IEOR", "Jay Sethuraman", 67, ieorCourses()),
	})
	var changes []catalogs.Change
	cat.SetObserver(func(c catalogs.Change) { changes = append(changes, c) })

	require.NoError(t, cat.LoadFrom(path))
	assert.Equal(t, []string{"COMS"}, cat.DepartmentCodes())
	require.Len(t, changes, 1)
	assert.Equal(t, catalogs.CatalogReplaced, changes[0].Type)
}

func TestLoadMissingFile(t *testing.T) {
	cat := newComsCatalog(catalogs.WithPath(filepath.Join(t.TempDir(), "absent.bin")))
	err := cat.Load()
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
	assert.False(t, errors.IsCorrupt(err))
	assert.Equal(t, 1, cat.Len(), "failed load leaves catalog untouched")
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	cat := newComsCatalog(catalogs.WithPath(path))
	before := cat.Revision()
	err := cat.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCorrupt(err))

	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.File)
	assert.Equal(t, before, cat.Revision())
	assert.Equal(t, 1, cat.Len())
}

func TestSaveWithoutPath(t *testing.T) {
	err := newComsCatalog().Save()
	require.Error(t, err)
	var ce *errors.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestWidth32File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog32.bin")
	cat := newComsCatalog(catalogs.WithPath(path), catalogs.WithWidth(catalogs.Width32))
	require.NoError(t, cat.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, comsLayout(catalogs.Width32), data)

	wrongWidth := catalogs.New(catalogs.WithPath(path))
	assert.Error(t, wrongWidth.Load())

	right := catalogs.New(catalogs.WithPath(path), catalogs.WithWidth(catalogs.Width32))
	require.NoError(t, right.Load())
	assert.True(t, cat.Equal(right))
}
