package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// porcelainStatus is the parsed result of `git status --porcelain=v2 --branch`.
type porcelainStatus struct {
	Branch      string
	Detached    bool
	HasUpstream bool
	Ahead       int
	Behind      int
	Dirty       bool
}

// parsePorcelainV2Status parses the output of
// `git status --porcelain=v2 --branch`. Dirty is set as soon as any
// non-header, non-empty line is observed (entries starting with 1, 2, u, or
// ?).
func parsePorcelainV2Status(output string) porcelainStatus {
	var s porcelainStatus
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "# branch.head "):
			head := strings.TrimPrefix(line, "# branch.head ")
			if head == "(detached)" {
				s.Detached = true
			} else {
				s.Branch = head
			}
		case strings.HasPrefix(line, "# branch.ab "):
			s.HasUpstream = true
			fields := strings.Fields(strings.TrimPrefix(line, "# branch.ab "))
			for _, f := range fields {
				if strings.HasPrefix(f, "+") {
					s.Ahead, _ = strconv.Atoi(strings.TrimPrefix(f, "+"))
				} else if strings.HasPrefix(f, "-") {
					s.Behind, _ = strconv.Atoi(strings.TrimPrefix(f, "-"))
				}
			}
		case strings.HasPrefix(line, "#"):
			// other header line (branch.oid, branch.upstream) - ignore.
		case strings.HasPrefix(line, "1") || strings.HasPrefix(line, "2") ||
			strings.HasPrefix(line, "u") || strings.HasPrefix(line, "?"):
			s.Dirty = true
		}
	}
	return s
}

// Status computes the full GitStatus for the worktree at c.Dir, per
// SPEC_FULL.md §4.4. branch config overrides (main_branch) are supplied by
// the caller via configuredDefault, which wins over everything except an
// explicit per-branch workmux-base.
func (c *Client) Status(ctx context.Context, configuredDefault string) (GitStatus, error) {
	out, err := c.git("status", "--porcelain=v2", "--branch").Output(ctx)
	if err != nil {
		return GitStatus{}, fmt.Errorf("git status: %w", err)
	}
	parsed := parsePorcelainV2Status(out)

	result := GitStatus{
		Branch:      parsed.Branch,
		HasUpstream: parsed.HasUpstream,
		Ahead:       parsed.Ahead,
		Behind:      parsed.Behind,
		Dirty:       parsed.Dirty,
	}

	if parsed.Detached || parsed.Branch == "" {
		return result, nil
	}

	base := c.resolveBaseWithFallback(ctx, parsed.Branch, configuredDefault)
	result.BaseBranch = base

	if base == parsed.Branch {
		return result, nil
	}

	hasConflict, err := c.ConflictVsBase(ctx, base)
	if err == nil {
		result.HasConflict = hasConflict
	}

	committedAdded, committedRemoved, err := c.numstatDelta(ctx, base+"...HEAD")
	if err == nil {
		result.CommittedAdded = committedAdded
		result.CommittedRemoved = committedRemoved
	}

	uncommittedAdded, uncommittedRemoved, err := c.numstatDelta(ctx, "HEAD")
	if err == nil {
		result.UncommittedAdded = uncommittedAdded
		result.UncommittedRemove = uncommittedRemoved
	}

	untrackedAdded, err := c.untrackedLineCount(ctx)
	if err == nil {
		result.UncommittedAdded += untrackedAdded
	}

	return result, nil
}

// resolveBaseWithFallback prefers branch.<name>.workmux-base, then
// configuredDefault (e.g. config.MainBranch), then the repo's detected
// default branch, then "main", then "master".
func (c *Client) resolveBaseWithFallback(ctx context.Context, branch, configuredDefault string) string {
	if base, err := c.GetBranchBase(ctx, branch); err == nil && base != "" {
		return base
	}
	if configuredDefault != "" {
		return configuredDefault
	}
	if def, err := c.DefaultBranch(ctx); err == nil && def != "" {
		return def
	}
	if exists, _ := c.BranchExists(ctx, "main"); exists {
		return "main"
	}
	return "master"
}

// numstatDelta runs `git diff --numstat <rangeSpec>` and sums added/removed
// lines across all files. Binary files report "-\t-\t<path>" and are
// skipped.
func (c *Client) numstatDelta(ctx context.Context, rangeSpec string) (added, removed int, err error) {
	out, err := c.git("diff", "--numstat", rangeSpec).Output(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, line := range splitNonEmptyLines(out) {
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			continue
		}
		a, aErr := strconv.Atoi(fields[0])
		r, rErr := strconv.Atoi(fields[1])
		if aErr != nil || rErr != nil {
			continue // binary marker "-"
		}
		added += a
		removed += r
	}
	return added, removed, nil
}

// untrackedLineCount sums the text-line count of every untracked file
// (binary files contribute zero, symlinks contribute one line).
func (c *Client) untrackedLineCount(ctx context.Context) (int, error) {
	out, err := c.git("ls-files", "--others", "--exclude-standard").Output(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rel := range splitNonEmptyLines(out) {
		total += countFileLines(c.Dir + "/" + rel)
	}
	return total, nil
}

// countFileLines counts lines the way git counts them: a NUL byte in the
// first 8KiB marks the file binary (contributes 0); a symlink contributes
// exactly 1; otherwise lines are counted by newline, with the final
// unterminated line still counted if non-empty.
func countFileLines(path string) int {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	probeLen := len(data)
	if probeLen > 8192 {
		probeLen = 8192
	}
	if bytes.IndexByte(data[:probeLen], 0) != -1 {
		return 0
	}
	if len(data) == 0 {
		return 0
	}
	lines := bytes.Count(data, []byte("\n"))
	if data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}
