// Package diffstat parses unified diff text into individually stageable
// hunks, computes per-file and per-hunk line statistics, and renders diffs
// either through an external pretty-printer or a built-in ANSI fallback.
package diffstat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DiffHunk is a renderable, individually stageable diff fragment, per
// SPEC_FULL.md §3/§4.4.
type DiffHunk struct {
	FileHeader   string // diff --git / ---/+++ / index / mode lines
	HunkBody     string // starts with "@@ ... @@"
	Filename     string
	LinesAdded   int
	LinesRemoved int

	rendered     string
	renderedSet  bool
	parsedLines  []string
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseHunkHeader extracts the old/new starting line numbers from a
// "@@ -old,count +new,count @@" header. Returns ok=false for anything that
// doesn't match, including headers with ANSI escapes still attached (the
// caller is expected to strip those first via StripANSI).
func ParseHunkHeader(header string) (oldStart, newStart int, ok bool) {
	m := hunkHeaderRe.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return 0, 0, false
	}
	oldStart, err1 := strconv.Atoi(m[1])
	newStart, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return oldStart, newStart, true
}

// parseHunkHeaderCounts additionally extracts the optional line counts,
// defaulting each to 1 when omitted (the unified-diff convention for a
// single-line range).
func parseHunkHeaderCounts(header string) (oldStart, oldCount, newStart, newCount int, ok bool) {
	m := hunkHeaderRe.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return 0, 0, 0, 0, false
	}
	oldStart, _ = strconv.Atoi(m[1])
	newStart, _ = strconv.Atoi(m[3])
	oldCount = 1
	if m[2] != "" {
		oldCount, _ = strconv.Atoi(m[2])
	}
	newCount = 1
	if m[4] != "" {
		newCount, _ = strconv.Atoi(m[4])
	}
	return oldStart, oldCount, newStart, newCount, true
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR color escape sequences.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// bodyLines splits HunkBody into lines, dropping a single trailing empty
// element produced by a terminal newline.
func (h *DiffHunk) bodyLines() []string {
	if h.parsedLines != nil {
		return h.parsedLines
	}
	lines := strings.Split(h.HunkBody, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	h.parsedLines = lines
	return lines
}

// CountStats recomputes LinesAdded/LinesRemoved from HunkBody, counting
// every "+"/"-" line except the hunk header itself.
func (h *DiffHunk) CountStats() {
	added, removed := 0, 0
	for _, line := range h.bodyLines() {
		if strings.HasPrefix(line, "@@") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	h.LinesAdded = added
	h.LinesRemoved = removed
}

// isChangeLine reports whether a (ANSI-stripped) line is a +/- change line,
// excluding the "+++"/"---" file markers.
func isChangeLine(line string) bool {
	s := StripANSI(line)
	return (strings.HasPrefix(s, "+") && !strings.HasPrefix(s, "+++")) ||
		(strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "---"))
}

// lineDelta returns the (old, new) line-number advance contributed by one
// body line: a pure addition advances only new, a pure removal advances
// only old, and context advances both.
func lineDelta(line string) (oldDelta, newDelta int) {
	s := StripANSI(line)
	switch {
	case strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "---"):
		return 1, 0
	case strings.HasPrefix(s, "+") && !strings.HasPrefix(s, "+++"):
		return 0, 1
	default:
		return 1, 1
	}
}

// Split breaks a hunk into sub-hunks wherever at least one context line
// separates two change groups. Returns (nil, false) when fewer than two
// sub-hunks would result.
func (h *DiffHunk) Split() ([]DiffHunk, bool) {
	lines := h.bodyLines()
	if len(lines) == 0 {
		return nil, false
	}
	oldStart, _, newStart, _, ok := parseHunkHeaderCounts(lines[0])
	if !ok {
		return nil, false
	}
	content := lines[1:]

	var changeIdx []int
	for i, line := range content {
		if isChangeLine(line) {
			changeIdx = append(changeIdx, i)
		}
	}
	if len(changeIdx) == 0 {
		return nil, false
	}

	type splitPoint struct{ endIdx, nextStart int }
	var splitPoints []splitPoint
	for i := 0; i < len(changeIdx)-1; i++ {
		prevChange, nextChange := changeIdx[i], changeIdx[i+1]
		if nextChange > prevChange+1 {
			splitPoints = append(splitPoints, splitPoint{endIdx: nextChange, nextStart: prevChange + 1})
		}
	}
	if len(splitPoints) == 0 {
		return nil, false
	}

	makeSubHunk := func(subLines []string, offset int) (DiffHunk, bool) {
		if len(subLines) == 0 {
			return DiffHunk{}, false
		}
		oldLine, newLine := oldStart, newStart
		for _, line := range content[:offset] {
			od, nd := lineDelta(line)
			oldLine += od
			newLine += nd
		}
		oldCount, newCount := 0, 0
		for _, line := range subLines {
			od, nd := lineDelta(line)
			oldCount += od
			newCount += nd
		}
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldLine, oldCount, newLine, newCount)
		body := strings.Join(append([]string{header}, subLines...), "\n") + "\n"
		sub := DiffHunk{FileHeader: h.FileHeader, HunkBody: body, Filename: h.Filename}
		sub.CountStats()
		return sub, true
	}

	var subs []DiffHunk
	startIdx := 0
	for _, sp := range splitPoints {
		if sub, ok := makeSubHunk(content[startIdx:sp.endIdx], startIdx); ok {
			subs = append(subs, sub)
		}
		startIdx = sp.nextStart
	}
	if sub, ok := makeSubHunk(content[startIdx:], startIdx); ok {
		subs = append(subs, sub)
	}

	if len(subs) <= 1 {
		return nil, false
	}
	return subs, true
}

// Reconstruct returns the patch-apply-ready text for this hunk.
func (h *DiffHunk) Reconstruct() string {
	return h.FileHeader + "\n" + h.HunkBody
}
