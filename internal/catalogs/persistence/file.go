// Package persistence reads and writes whole catalog files. Writes go to a
// temporary file in the target directory and are renamed into place, so a
// crash mid-write never leaves a half-written catalog behind.
package persistence

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
)

// WriteFile atomically replaces path with data, creating parent directories
// as needed.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return errors.NewConfigError("persistence", "no catalog file configured", nil)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(data); err != nil {
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Sync(); err != nil {
		cleanup()
		return errors.WrapIO("sync", path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// ReadFile returns the whole contents of path.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.NewConfigError("persistence", "no catalog file configured", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// Exists reports whether path names an existing regular file. Errors other
// than "not exist" are returned so callers do not mistake a permission
// problem for a missing file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return false, errors.NewIOError("stat", path, errors.New("is a directory"))
	}
	return true, nil
}
