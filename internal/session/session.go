// Package session provides the file edit service backed by a file state
// cache and a file provider. It implements service.Service: reads record
// what was seen, edits are checked against it, and every successful write
// refreshes the record.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/fileio"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/repo"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/validate"
)

// Service implements service.Service.
type Service struct {
	cfg   *config.Config
	cache filestate.Cache
	fs    fileio.Provider
	base  string // directory relative paths resolve against, "" for cwd
	now   func() time.Time
	locks locks

	closer io.Closer // owned cache, closed by Close
	dir    string    // .llmedit directory when opened from a workspace
}

var _ service.Service = (*Service)(nil)

// New creates a Service over cache and fs. The caller keeps ownership of
// cache; Close does not close it.
func New(cfg *config.Config, cache filestate.Cache, fs fileio.Provider) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{cfg: cfg, cache: cache, fs: fs, now: time.Now}
}

// Open discovers the workspace by walking up the directory tree, loads its
// config and opens its state database. Returns repo.ErrNotInitialised if no
// workspace is found.
func Open() (*Service, error) {
	return OpenDir("")
}

// OpenDir opens the workspace rooted at dir, skipping discovery. An empty
// dir behaves like Open.
func OpenDir(dir string) (*Service, error) {
	var dbPath string
	if dir == "" {
		p, err := repo.Discover()
		if err != nil {
			return nil, err
		}
		dbPath = p
	} else {
		dbPath = filepath.Join(dir, repo.Dir, repo.StateFile)
		if _, err := os.Stat(dbPath); err != nil {
			return nil, repo.ErrNotInitialised
		}
	}
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	config.SetLocalDir(filepath.Dir(dbPath))

	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	cache, err := filestate.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	s := New(cfg, cache, fileio.OS{})
	s.closer = cache
	s.dir = filepath.Dir(dbPath)
	return s, nil
}

// Init initialises a new llmedit workspace in dir (empty for the current
// directory).
func Init(force bool, dir string) error {
	return repo.Init(force, dir)
}

// SetBase sets the directory relative paths are resolved against.
func (s *Service) SetBase(dir string) {
	s.base = dir
}

// Config returns the configuration the service was created with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Dir returns the .llmedit directory of an opened workspace, or "" for a
// service built with New.
func (s *Service) Dir() string {
	return s.dir
}

// Close closes the state database when the service opened it.
func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// resolve validates p and returns its canonical absolute form. Failures
// are reported as InvalidPath edit errors.
func (s *Service) resolve(p string) (string, error) {
	abs, err := validate.Path(p, s.base, s.cfg.MaxPath())
	if err != nil {
		return "", edit.PathError(p, err)
	}
	return abs, nil
}

// load reads abs through the provider. A missing file is not an error:
// exists is false and content empty.
func (s *Service) load(abs string) (content string, mtime int64, exists bool, err error) {
	content, mtime, err = s.fs.Read(abs)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return "", 0, false, nil
	case errors.Is(err, fileio.ErrIsDirectory):
		return "", 0, false, edit.PathError(abs, fmt.Errorf("%w: %w", validate.ErrNotRegular, err))
	default:
		return "", 0, false, fmt.Errorf("read %s: %w", abs, err)
	}
	if err := validate.Content(content, s.cfg.MaxContent()); err != nil {
		return "", 0, false, fmt.Errorf("%s: %w", abs, err)
	}
	return content, mtime, true, nil
}

// context returns the hunk context to use.
func (s *Service) context(n *int) int {
	if n != nil {
		return *n
	}
	return s.cfg.Context()
}

// locks serialises work on the same path. Entries are reference counted
// and removed once no caller holds or waits for them.
type locks struct {
	mu sync.Mutex
	m  map[string]*pathLock
}

type pathLock struct {
	sync.Mutex
	refs int
}

// lock acquires the lock for key and returns its release function.
func (l *locks) lock(key string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*pathLock)
	}
	pl, ok := l.m[key]
	if !ok {
		pl = &pathLock{}
		l.m[key] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
