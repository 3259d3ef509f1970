package diffstat

import "strings"

// ParseHunks segments unified diff text into DiffHunk values. A new
// "diff --git" line starts a new file section and flushes any pending hunk;
// a line starting with "@@" starts a new hunk and flushes the previous one;
// everything between sections (---, +++, index, mode lines) accumulates
// into the running FileHeader.
func ParseHunks(diff string) []DiffHunk {
	var hunks []DiffHunk
	var fileHeader strings.Builder
	var currentFilename string
	var body *strings.Builder
	var pendingHeader string

	flush := func() {
		if body == nil {
			return
		}
		h := DiffHunk{
			FileHeader: strings.TrimRight(fileHeader.String(), "\n"),
			HunkBody:   pendingHeader + body.String(),
			Filename:   currentFilename,
		}
		h.CountStats()
		hunks = append(hunks, h)
		body = nil
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			fileHeader.Reset()
			fileHeader.WriteString(line)
			fileHeader.WriteByte('\n')
			currentFilename = extractFilenameFromDiffLine(line)
		case strings.HasPrefix(line, "@@"):
			flush()
			pendingHeader = line + "\n"
			body = &strings.Builder{}
		case body != nil:
			// last split() produces a trailing empty element; avoid adding
			// a synthetic blank line at EOF.
			if i == len(lines)-1 && line == "" {
				continue
			}
			body.WriteString(line)
			body.WriteByte('\n')
		default:
			fileHeader.WriteString(line)
			fileHeader.WriteByte('\n')
		}
	}
	flush()
	return hunks
}

// extractFilenameFromDiffLine pulls the "b/<path>" target out of a
// "diff --git a/<path> b/<path>" line.
func extractFilenameFromDiffLine(line string) string {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.HasPrefix(fields[i], "b/") {
			return strings.TrimPrefix(fields[i], "b/")
		}
	}
	if len(fields) > 0 {
		return fields[len(fields)-1]
	}
	return ""
}

// CountDiffStats sums LinesAdded/LinesRemoved across every hunk parsed from
// diff, matching ParseHunks's own per-hunk counts (the invariant exercised
// by SPEC_FULL.md §8).
func CountDiffStats(diff string) (added, removed int) {
	for _, h := range ParseHunks(diff) {
		added += h.LinesAdded
		removed += h.LinesRemoved
	}
	return added, removed
}
