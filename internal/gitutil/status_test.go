package gitutil

import "testing"

func TestParsePorcelainV2StatusWithUpstream(t *testing.T) {
	out := "# branch.oid abc123\n# branch.head feat\n# branch.upstream origin/feat\n# branch.ab +1 -2\n"
	s := parsePorcelainV2Status(out)
	if s.Branch != "feat" || !s.HasUpstream || s.Ahead != 1 || s.Behind != 2 || s.Dirty {
		t.Fatalf("unexpected parse: %+v", s)
	}
}

func TestParsePorcelainV2StatusNoUpstream(t *testing.T) {
	out := "# branch.oid abc123\n# branch.head feat\n"
	s := parsePorcelainV2Status(out)
	if s.HasUpstream {
		t.Fatal("expected has_upstream=false when branch.ab absent")
	}
}

func TestParsePorcelainV2StatusDirty(t *testing.T) {
	out := "# branch.head main\n1 .M N... 100644 100644 100644 abc def file.go\n"
	s := parsePorcelainV2Status(out)
	if !s.Dirty {
		t.Fatal("expected dirty=true")
	}
}

func TestParsePorcelainV2StatusDetached(t *testing.T) {
	out := "# branch.head (detached)\n"
	s := parsePorcelainV2Status(out)
	if !s.Detached || s.Branch != "" {
		t.Fatalf("unexpected parse: %+v", s)
	}
}

func TestParsePorcelainV2StatusUntrackedIsDirty(t *testing.T) {
	out := "# branch.head main\n? newfile.txt\n"
	s := parsePorcelainV2Status(out)
	if !s.Dirty {
		t.Fatal("expected dirty=true for untracked file")
	}
}
