// Package fileio provides the file access used by edit sessions.
//
// Sessions read a file, record what they saw, and later write the edited
// content back. The Provider interface keeps that I/O swappable so sessions
// can be tested against an in-memory filesystem.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrIsDirectory is returned when a path names a directory.
var ErrIsDirectory = errors.New("path is a directory")

// Provider reads and writes whole files by absolute path.
//
// Read returns an error wrapping fs.ErrNotExist for a missing file. Mtimes
// are milliseconds since the Unix epoch.
type Provider interface {
	Read(path string) (content string, mtimeMs int64, err error)
	Exists(path string) bool
	Mtime(path string) (int64, error)
	Write(path, content string) (mtimeMs int64, err error)
}

// OS is a Provider backed by the local filesystem.
type OS struct{}

var _ Provider = OS{}

// Read reads the whole file and its modification time.
func (OS) Read(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	content := make([]byte, info.Size())
	if _, err := io.ReadFull(f, content); err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(content), info.ModTime().UnixMilli(), nil
}

// Exists reports whether path names an existing regular file.
func (OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Mtime returns the file's modification time.
func (OS) Mtime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixMilli(), nil
}

// Write replaces the file's content, creating parent directories as needed.
// The content goes to a temporary file in the same directory that is renamed
// over the target, so readers never see a partial write. An existing file
// keeps its permission bits; new files get 0644.
func (OS) Write(path, content string) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return 0, fmt.Errorf("%s: %w", path, ErrIsDirectory)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()
	if err := writeTemp(tmp, content, mode); err != nil {
		os.Remove(name)
		return 0, err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return 0, fmt.Errorf("replacing %s: %w", path, err)
	}
	return OS{}.Mtime(path)
}

// writeTemp writes and syncs the temp file, closing it in all cases.
func writeTemp(f *os.File, content string, mode fs.FileMode) error {
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", f.Name(), err)
	}
	return nil
}
