// Package repo provides workspace initialisation and discovery for llmedit.
//
// An llmedit workspace is a .llmedit directory holding the file-state
// database (state.db) and optionally a local config.yaml. This package
// handles:
//   - Initialising new workspaces (creating .llmedit/ and the database)
//   - Discovering existing workspaces by walking up the directory tree
//   - Keeping the state database out of git via .llmedit/.gitignore
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .llmedit directory is found, or the filesystem
// root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/llmedit/internal/filestate"
)

const (
	// Dir is the directory name for the llmedit workspace.
	Dir = ".llmedit"
	// StateFile is the file-state database filename.
	StateFile = "state.db"
)

// ErrNotInitialised is returned when no llmedit workspace is found.
var ErrNotInitialised = errors.New("llmedit not initialised (run 'llmedit init')")

// Init initialises a new llmedit workspace in dir (empty for the current
// directory). With force, an existing state database is removed first,
// dropping every recorded read.
//
// Init does not write config, following the git model: config is managed
// separately via "llmedit config".
func Init(force bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	wsDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(wsDir, StateFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("workspace %s already initialised (use --force to reinitialise)", wsDir)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove database: %w", err)
			}
		}
	}

	if err := os.MkdirAll(wsDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := filestate.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}

	if err := Ignore(wsDir, stateEntries()...); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}
	return nil
}

// stateEntries lists the database file and its SQLite sidecars.
func stateEntries() []string {
	return []string{StateFile, StateFile + "-wal", StateFile + "-shm"}
}

// Discover walks up the directory tree looking for the state database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := DiscoverDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, StateFile)
	if _, err := os.Stat(p); err != nil {
		return "", ErrNotInitialised
	}
	return p, nil
}

// DiscoverDir finds the .llmedit directory, walking up the tree.
// Returns the full path to the .llmedit directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		wsDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(wsDir); err == nil && info.IsDir() {
			return wsDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Root returns the workspace root (the directory containing .llmedit).
func Root(wsDir string) string {
	return filepath.Dir(wsDir)
}
