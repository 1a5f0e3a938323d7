// Package fs provides file system helpers.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Mkdir creates path and all missing parent directories.
func Mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

const FileBackupSuffix = ".bak"

// BackupFile copies path to path+FileBackupSuffix, keeping its permissions.
// An existing backup file is replaced.
func BackupFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return WriteFileAtomic(path+FileBackupSuffix, content, fi.Mode().Perm())
}

// WriteFileAtomic writes data to a temporary file in the directory of path
// and renames it to path afterwards.
// Readers either see the old or the new content of the file, never a
// partially written one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmpPath := filepath.Join(
		filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()),
	)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmpPath))
		}
	}()

	// perm is applied without the umask.
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
