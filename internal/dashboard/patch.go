package dashboard

import (
	"context"
	"fmt"

	"github.com/example/workmux/internal/diffstat"
	"github.com/example/workmux/internal/gitutil"
)

// PatchSession drives hunk-by-hunk staging against one worktree's diff, per
// SPEC_FULL.md §4.5. It owns the current hunk list, where the user is in
// that list, and a stack of already-staged hunks so the most recent one can
// be undone.
type PatchSession struct {
	git *gitutil.Client

	hunks      []diffstat.DiffHunk
	current    int
	totalStart int
	processed  int
	staged     []diffstat.DiffHunk
}

// NewPatchSession starts a patch session over an already-parsed hunk list.
func NewPatchSession(git *gitutil.Client, hunks []diffstat.DiffHunk) *PatchSession {
	return &PatchSession{
		git:        git,
		hunks:      hunks,
		totalStart: len(hunks),
	}
}

// Done reports whether every hunk has been staged or skipped.
func (p *PatchSession) Done() bool {
	return len(p.hunks) == 0
}

// Current returns the hunk awaiting a decision, or ok=false if none remain.
func (p *PatchSession) Current() (diffstat.DiffHunk, bool) {
	if p.Done() {
		return diffstat.DiffHunk{}, false
	}
	if p.current >= len(p.hunks) {
		p.current = len(p.hunks) - 1
	}
	return p.hunks[p.current], true
}

// Progress reports (processed, total-at-start) for the status line.
func (p *PatchSession) Progress() (processed, total int) {
	return p.processed, p.totalStart
}

// Next advances to the next hunk without staging the current one, wrapping
// to the first hunk past the end.
func (p *PatchSession) Next() {
	if len(p.hunks) == 0 {
		return
	}
	p.current = (p.current + 1) % len(p.hunks)
}

// Prev moves to the previous hunk, wrapping to the last.
func (p *PatchSession) Prev() {
	if len(p.hunks) == 0 {
		return
	}
	p.current = (p.current - 1 + len(p.hunks)) % len(p.hunks)
}

// Split replaces the current hunk with its sub-hunks, re-centering the
// index on the first of them. No-op if the hunk can't be split further.
func (p *PatchSession) Split() bool {
	hunk, ok := p.Current()
	if !ok {
		return false
	}
	subs, ok := hunk.Split()
	if !ok {
		return false
	}
	rest := append([]diffstat.DiffHunk{}, p.hunks[:p.current]...)
	rest = append(rest, subs...)
	rest = append(rest, p.hunks[p.current+1:]...)
	p.hunks = rest
	return true
}

// Stage applies the current hunk with `git apply --cached`, pushes it onto
// the undo stack, removes it from the pending list, and advances.
func (p *PatchSession) Stage(ctx context.Context) error {
	hunk, ok := p.Current()
	if !ok {
		return fmt.Errorf("no hunk to stage")
	}
	if err := p.git.Apply(ctx, hunk.Reconstruct(), false); err != nil {
		return fmt.Errorf("stage hunk: %w", err)
	}
	p.staged = append(p.staged, hunk)
	p.removeCurrent()
	return nil
}

// Skip drops the current hunk without staging it and advances.
func (p *PatchSession) Skip() {
	if p.Done() {
		return
	}
	p.removeCurrent()
}

func (p *PatchSession) removeCurrent() {
	p.hunks = append(p.hunks[:p.current], p.hunks[p.current+1:]...)
	p.processed++
	if p.current >= len(p.hunks) && p.current > 0 {
		p.current--
	}
}

// Undo reverses the most recently staged hunk with `git apply -R --cached`
// and reinstates it at the front of the pending list.
func (p *PatchSession) Undo(ctx context.Context) error {
	if len(p.staged) == 0 {
		return fmt.Errorf("nothing to undo")
	}
	last := p.staged[len(p.staged)-1]
	if err := p.git.Apply(ctx, last.Reconstruct(), true); err != nil {
		return fmt.Errorf("undo staged hunk: %w", err)
	}
	p.staged = p.staged[:len(p.staged)-1]
	p.hunks = append([]diffstat.DiffHunk{last}, p.hunks...)
	p.current = 0
	if p.processed > 0 {
		p.processed--
	}
	return nil
}
