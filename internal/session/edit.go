// edit.go implements the read-check-write cycle for file edits.
//
// Separated from read.go because edits consume recorded reads rather than
// produce them. The edit package decides whether a batch applies and what
// it produces; this file supplies its inputs, writes the result and keeps
// the file state cache in step with the disk.
//
// Design: Every transaction holds the path's lock from the disk read until
// the cache refresh, so two edits to one file cannot interleave.

package session

import (
	"context"
	"fmt"

	"github.com/jpl-au/llmedit/internal/edit"
	"github.com/jpl-au/llmedit/internal/filestate"
	"github.com/jpl-au/llmedit/internal/hunk"
	"github.com/jpl-au/llmedit/internal/service"
	"github.com/jpl-au/llmedit/internal/validate"
	"github.com/jpl-au/llmedit/internal/worddiff"
)

// Edit applies edits to the file at p as one transaction.
func (s *Service) Edit(ctx context.Context, p string, edits []edit.Edit, opts service.EditOptions) (service.EditResult, error) {
	abs, err := s.resolve(p)
	if err != nil {
		return service.EditResult{}, err
	}
	unlock := s.locks.lock(filestate.Key(abs))
	defer unlock()
	return s.apply(ctx, abs, edits, opts)
}

// EditLines replaces lines start..end of the content last read from p.
func (s *Service) EditLines(ctx context.Context, p string, start, end int, replacement string, opts service.EditOptions) (service.EditResult, error) {
	abs, err := s.resolve(p)
	if err != nil {
		return service.EditResult{}, err
	}
	unlock := s.locks.lock(filestate.Key(abs))
	defer unlock()

	state, err := s.cache.Get(ctx, abs)
	if err != nil {
		return service.EditResult{}, fmt.Errorf("load state %s: %w", abs, err)
	}
	if state == nil {
		return service.EditResult{}, &edit.Error{Kind: edit.NotRead, Path: abs, Index: -1}
	}

	e, err := edit.FromLineRange(state.Content, start, end, replacement)
	if err != nil {
		return service.EditResult{}, &edit.Error{Kind: edit.InvalidEdit, Path: abs, Index: -1, Reason: err.Error(), Err: err}
	}
	return s.apply(ctx, abs, []edit.Edit{e}, opts)
}

// Write replaces the whole file at p with content.
func (s *Service) Write(ctx context.Context, p, content string, opts service.EditOptions) (service.EditResult, error) {
	abs, err := s.resolve(p)
	if err != nil {
		return service.EditResult{}, err
	}
	unlock := s.locks.lock(filestate.Key(abs))
	defer unlock()

	if content == "" && !s.fs.Exists(abs) {
		return s.createEmpty(ctx, abs, opts)
	}
	return s.apply(ctx, abs, []edit.Edit{{OldString: "", NewString: content}}, opts)
}

// apply runs one transaction on abs. The caller holds the path lock.
func (s *Service) apply(ctx context.Context, abs string, edits []edit.Edit, opts service.EditOptions) (service.EditResult, error) {
	original, mtime, exists, err := s.load(abs)
	if err != nil {
		return service.EditResult{}, err
	}

	state, err := s.cache.Get(ctx, abs)
	if err != nil {
		return service.EditResult{}, fmt.Errorf("load state %s: %w", abs, err)
	}

	res, err := edit.Apply(edit.Request{
		Path:        abs,
		Original:    original,
		Exists:      exists,
		DiskMtimeMs: mtime,
		Edits:       edits,
		State:       state,
		Context:     s.context(opts.Context),
	})
	if err != nil {
		return service.EditResult{}, err
	}
	if err := validate.Content(res.UpdatedContent, s.cfg.MaxContent()); err != nil {
		return service.EditResult{}, fmt.Errorf("%s: %w", abs, err)
	}

	out := result(abs, res)
	out.Created = !exists
	if opts.DryRun {
		out.DryRun = true
		out.UpdatedContent = res.UpdatedContent
		return out, nil
	}

	if err := s.commit(ctx, abs, res.UpdatedContent); err != nil {
		return service.EditResult{}, err
	}
	return out, nil
}

// createEmpty creates an empty file. An empty-to-empty edit would be a
// no-op, so this bypasses the transaction.
func (s *Service) createEmpty(ctx context.Context, abs string, opts service.EditOptions) (service.EditResult, error) {
	out := service.EditResult{Path: abs, Created: true, Hunks: []hunk.Hunk{}}
	if opts.DryRun {
		out.DryRun = true
		return out, nil
	}
	if err := s.commit(ctx, abs, ""); err != nil {
		return service.EditResult{}, err
	}
	return out, nil
}

// commit writes content and records it as read, so the next edit needs no
// fresh read.
func (s *Service) commit(ctx context.Context, abs, content string) error {
	mtime, err := s.fs.Write(abs, content)
	if err != nil {
		return fmt.Errorf("write %s: %w", abs, err)
	}
	err = s.cache.Put(ctx, filestate.State{
		Path:    abs,
		Content: content,
		MtimeMs: mtime,
		ReadAt:  s.now(),
	})
	if err != nil {
		return fmt.Errorf("record write %s: %w", abs, err)
	}
	return nil
}

// result converts a transaction result for callers.
func result(abs string, res edit.Result) service.EditResult {
	added, removed := hunk.Summary(res.Hunks)
	return service.EditResult{
		Path:    abs,
		Hunks:   res.Hunks,
		Marks:   worddiff.HighlightHunks(res.Hunks),
		Added:   added,
		Removed: removed,
		Edits:   res.Edits,
	}
}
