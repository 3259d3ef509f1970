package diffstat

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/example/workmux/internal/gitutil"
)

// FileStatus classifies a file-list entry beyond a plain modification.
type FileStatus string

const (
	FileModified FileStatus = "modified"
	FileCreated  FileStatus = "created"
	FileDeleted  FileStatus = "deleted"
	FileRenamed  FileStatus = "renamed"
	FileCopied   FileStatus = "copied"
	FileModeOnly FileStatus = "mode-change"
)

// FileEntry is one row of the dashboard's file-picker pane.
type FileEntry struct {
	Path         string
	LinesAdded   int
	LinesRemoved int
	Status       FileStatus
}

// ExtractFileList aggregates per-file stats from `git diff --numstat
// --summary` output into a stable list, sorted by path for deterministic
// rendering.
func ExtractFileList(ctx context.Context, client *gitutil.Client, rangeSpec string, includeUntracked bool) ([]FileEntry, error) {
	entries := map[string]*FileEntry{}
	order := []string{}

	get := func(path string) *FileEntry {
		if e, ok := entries[path]; ok {
			return e
		}
		e := &FileEntry{Path: path, Status: FileModified}
		entries[path] = e
		order = append(order, path)
		return e
	}

	numstat, err := client.NumstatSummary(ctx, rangeSpec)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(numstat, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if applySummaryLine(line, get) {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			continue
		}
		path := fields[2]
		if idx := strings.Index(path, "=>"); idx != -1 {
			path = strings.TrimSpace(strings.TrimSuffix(path, "}"))
		}
		e := get(path)
		if a, err := strconv.Atoi(fields[0]); err == nil {
			e.LinesAdded = a
		}
		if r, err := strconv.Atoi(fields[1]); err == nil {
			e.LinesRemoved = r
		}
	}

	if includeUntracked {
		untracked, err := client.UntrackedFiles(ctx)
		if err == nil {
			for _, path := range untracked {
				e := get(path)
				e.Status = FileCreated
			}
		}
	}

	sort.Strings(order)
	result := make([]FileEntry, 0, len(order))
	for _, path := range order {
		result = append(result, *entries[path])
	}
	return result, nil
}

// applySummaryLine recognizes `git diff --summary` lines (create/delete
// mode, rename, copy, mode change) and updates the matching entry's status.
// Returns true if the line was a summary line (and thus not a numstat
// line). Leading whitespace, as git prints it, is ignored.
func applySummaryLine(line string, get func(string) *FileEntry) bool {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "create mode"):
		path := lastField(line)
		get(path).Status = FileCreated
		return true
	case strings.HasPrefix(line, "delete mode"):
		path := lastField(line)
		get(path).Status = FileDeleted
		return true
	case strings.HasPrefix(line, "mode change"):
		path := lastField(line)
		get(path).Status = FileModeOnly
		return true
	case strings.HasPrefix(line, "rename "):
		// "rename from/to <path> (NN%)" pairs; the "to" line carries the
		// final path.
		if strings.Contains(line, " to ") {
			path := extractRenamePath(line, " to ")
			get(path).Status = FileRenamed
		}
		return true
	case strings.HasPrefix(line, "copy "):
		if strings.Contains(line, " to ") {
			path := extractRenamePath(line, " to ")
			get(path).Status = FileCopied
		}
		return true
	default:
		return false
	}
}

func lastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func extractRenamePath(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx == -1 {
		return ""
	}
	rest := strings.TrimSpace(line[idx+len(marker):])
	if p := strings.Index(rest, " ("); p != -1 {
		rest = rest[:p]
	}
	return rest
}
