// Package platform holds small OS-facing helpers shared by the compiler and
// manifest writers: permission handling that tolerates Windows, and atomic
// file publication via temp-write-then-rename.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// WriteFileAtomic writes data to path without ever publishing partial
// content. The bytes go to a temp file in the destination directory first;
// only a successful write-and-sync is renamed into place. On any failure the
// temp file is removed and the previous content of path (if any) survives.
// Parent directories are created as needed.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	// Discard the temp file on every failure path below.
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("writing %s: %w", path, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("syncing %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("closing %s: %w", path, err))
	}
	if err := Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publishing %s: %w", path, err)
	}
	return nil
}
