package diffstat

import "testing"

func TestApplySummaryLineCreateMode(t *testing.T) {
	entries := map[string]*FileEntry{}
	get := func(p string) *FileEntry {
		if e, ok := entries[p]; ok {
			return e
		}
		e := &FileEntry{Path: p}
		entries[p] = e
		return e
	}
	if !applySummaryLine(" create mode 100644 foo/bar.go", get) {
		t.Fatal("expected create mode line to be recognized")
	}
	if entries["foo/bar.go"].Status != FileCreated {
		t.Fatalf("got status %q", entries["foo/bar.go"].Status)
	}
}

func TestApplySummaryLineRenameTo(t *testing.T) {
	entries := map[string]*FileEntry{}
	get := func(p string) *FileEntry {
		if e, ok := entries[p]; ok {
			return e
		}
		e := &FileEntry{Path: p}
		entries[p] = e
		return e
	}
	applySummaryLine(" rename from old/path.go", get)
	applySummaryLine(" rename to new/path.go (95%)", get)
	if entries["new/path.go"].Status != FileRenamed {
		t.Fatalf("got status %q", entries["new/path.go"].Status)
	}
}

func TestApplySummaryLineIgnoresNumstatLines(t *testing.T) {
	get := func(p string) *FileEntry { return &FileEntry{Path: p} }
	if applySummaryLine("3\t1\tfoo.go", get) {
		t.Fatal("numstat line should not be treated as a summary line")
	}
}

func TestExtractRenamePathStripsPercentage(t *testing.T) {
	got := extractRenamePath(" rename to new/path.go (95%)", " to ")
	if got != "new/path.go" {
		t.Fatalf("got %q", got)
	}
}

func TestLastFieldReturnsFinalToken(t *testing.T) {
	if got := lastField(" mode change 100644 => 100755 script.sh"); got != "script.sh" {
		t.Fatalf("got %q", got)
	}
}
