// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library to allow switching between OS-level and in-memory backends,
// which keeps transcript, history, and log tests off the real disk.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs installs a volatile in-memory backend for unit tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteAtomic replaces the file at path with data by writing a sibling temporary file
// and renaming it into place, so a failed write never truncates the previous contents.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	fs := API()

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, perm); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("write temporary file: %w", err)
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("replace file: %w", err)
	}

	return nil
}
