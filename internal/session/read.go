// read.go implements file reads and the bookkeeping of what was read.
//
// Separated from edit.go because reads only feed the file state cache;
// edits consume it. Forget lives here too since it is the inverse of Read.

package session

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/tokenize"
)

// Read returns the requested window of a file and records the read.
func (s *Service) Read(ctx context.Context, p string, opts service.ReadOptions) (service.ReadResult, error) {
	abs, err := s.resolve(p)
	if err != nil {
		return service.ReadResult{}, err
	}
	if opts.Offset < 0 || opts.Limit < 0 {
		return service.ReadResult{}, fmt.Errorf("%s: offset and limit must not be negative", abs)
	}

	unlock := s.locks.lock(filestate.Key(abs))
	defer unlock()

	content, mtime, exists, err := s.load(abs)
	if err != nil {
		return service.ReadResult{}, err
	}
	if !exists {
		return service.ReadResult{}, fmt.Errorf("%s: %w", abs, fs.ErrNotExist)
	}

	lines := tokenize.SplitLines(content)
	total := len(lines)
	start := max(opts.Offset, 1)
	if total == 0 {
		start = 1
	}
	if start > total && total > 0 {
		return service.ReadResult{}, fmt.Errorf("%s: offset %d is beyond the end of the file (%d lines)", abs, opts.Offset, total)
	}
	end := total
	if opts.Limit > 0 && start-1+opts.Limit < total {
		end = start - 1 + opts.Limit
	}

	var window string
	if total > 0 {
		window = strings.Join(lines[start-1:end], "")
	}
	partial := start > 1 || end < total

	err = s.cache.Put(ctx, filestate.State{
		Path:    abs,
		Content: content,
		MtimeMs: mtime,
		ReadAt:  s.now(),
		Partial: partial,
	})
	if err != nil {
		return service.ReadResult{}, fmt.Errorf("record read %s: %w", abs, err)
	}

	return service.ReadResult{
		Path:       abs,
		Content:    window,
		StartLine:  start,
		Lines:      max(end-start+1, 0),
		TotalLines: total,
		Partial:    partial,
		MtimeMs:    mtime,
	}, nil
}

// Forget drops the recorded read for p, or every record when p is empty.
// Clearing everything also compacts a SQLite cache.
func (s *Service) Forget(ctx context.Context, p string) error {
	if p == "" {
		if err := s.cache.Clear(ctx); err != nil {
			return fmt.Errorf("forget all: %w", err)
		}
		if v, ok := s.cache.(interface{ Vacuum(context.Context) error }); ok {
			if err := v.Vacuum(ctx); err != nil {
				return fmt.Errorf("vacuum: %w", err)
			}
		}
		return nil
	}

	abs, err := s.resolve(p)
	if err != nil {
		return err
	}
	unlock := s.locks.lock(filestate.Key(abs))
	defer unlock()
	if err := s.cache.Invalidate(ctx, abs); err != nil {
		return fmt.Errorf("forget %s: %w", abs, err)
	}
	return nil
}
