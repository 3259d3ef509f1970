package gitutil

import "testing"

func TestParseOwnerFromGitURL(t *testing.T) {
	cases := map[string]string{
		"https://github.com/owner/repo.git":             "owner",
		"https://github.com/owner/repo":                 "owner",
		"http://github.com/owner/repo.git":               "owner",
		"git@github.com:owner/repo.git":                 "owner",
		"git@github.com:owner/repo":                      "owner",
		"https://github.enterprise.com/owner/repo.git":   "owner",
		"git@github.enterprise.net:org/project.git":      "org",
		"https://github.company.internal/team/project.git": "team",
		"https://github.com/owner/repo/subpath":          "owner",
		"git@github.com:owner/repo/subpath":              "owner",
		"not-a-valid-url":                                "",
		"/local/path/to/repo":                            "",
		"file:///local/path/to/repo":                     "",
	}
	for url, want := range cases {
		if got := parseOwnerFromGitURL(url); got != want {
			t.Errorf("parseOwnerFromGitURL(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestParseRemoteBranchSpec(t *testing.T) {
	spec, ok := ParseRemoteBranchSpec("origin/feat")
	if !ok || spec.Remote != "origin" || spec.Branch != "feat" {
		t.Fatalf("unexpected parse: %+v ok=%v", spec, ok)
	}
	if _, ok := ParseRemoteBranchSpec("feat"); ok {
		t.Fatal("expected no match without slash")
	}
}

func TestParseForkBranchSpec(t *testing.T) {
	spec, ok := ParseForkBranchSpec("alice:feat")
	if !ok || spec.Owner != "alice" || spec.Branch != "feat" {
		t.Fatalf("unexpected parse: %+v ok=%v", spec, ok)
	}
	cases := []string{
		"origin/feat",
		"https://github.com/owner/repo",
		"git@github.com:owner/repo",
		":feat",
		"alice:",
		"noColonHere",
	}
	for _, c := range cases {
		if _, ok := ParseForkBranchSpec(c); ok {
			t.Errorf("expected no match for %q", c)
		}
	}
}

func TestParseRemoteURL(t *testing.T) {
	p, err := parseRemoteURL("git@github.com:bob/proj.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.scheme != "ssh" || p.host != "github.com" || p.repo != "proj" {
		t.Fatalf("unexpected parse: %+v", p)
	}

	p, err = parseRemoteURL("https://github.com/bob/proj.git")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.scheme != "https" || p.host != "github.com" || p.repo != "proj" {
		t.Fatalf("unexpected parse: %+v", p)
	}
}
