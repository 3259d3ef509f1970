package gitutil

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DefaultBranch resolves the repository's default branch: the symbolic ref
// `refs/remotes/origin/HEAD`, falling back to a local `main` then `master`.
// If the repository has no commits at all, an actionable error is returned;
// otherwise the caller is told to set `main_branch` in config.
func (c *Client) DefaultBranch(ctx context.Context) (string, error) {
	out, err := c.git("symbolic-ref", "refs/remotes/origin/HEAD").Output(ctx)
	if err == nil {
		return strings.TrimPrefix(strings.TrimSpace(out), "refs/remotes/origin/"), nil
	}

	for _, candidate := range []string{"main", "master"} {
		exists, checkErr := c.BranchExists(ctx, candidate)
		if checkErr == nil && exists {
			return candidate, nil
		}
	}

	hasCommits, hcErr := c.HasCommits(ctx)
	if hcErr == nil && !hasCommits {
		return "", fmt.Errorf("repository has no commits yet; make an initial commit or set main_branch in .workmux.yaml")
	}
	return "", fmt.Errorf("could not determine default branch; set main_branch in .workmux.yaml")
}

// BranchExists reports whether a local branch with the given name exists.
func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	return c.git("rev-parse", "--verify", "--quiet", "refs/heads/"+branch).Check(ctx)
}

// RemoteBranchExists reports whether <remote>/<branch> resolves.
func (c *Client) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	return c.git("rev-parse", "--verify", "--quiet", "refs/remotes/"+remote+"/"+branch).Check(ctx)
}

// CreateBranch creates a new local branch from startPoint without checking it out.
func (c *Client) CreateBranch(ctx context.Context, name, startPoint string) error {
	args := []string{"branch", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	return c.git(args...).Run(ctx)
}

// DeleteBranch deletes a local branch, forcing the delete when force is true
// (used for branches that have not been fully merged).
func (c *Client) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return c.git("branch", flag, name).Run(ctx)
}

// ParseRemoteBranchSpec splits "<remote>/<branch>" on the first slash.
func ParseRemoteBranchSpec(spec string) (RemoteBranchSpec, bool) {
	idx := strings.Index(spec, "/")
	if idx <= 0 || idx == len(spec)-1 {
		return RemoteBranchSpec{}, false
	}
	return RemoteBranchSpec{Remote: spec[:idx], Branch: spec[idx+1:]}, true
}

// ParseForkBranchSpec splits "<owner>:<branch>", rejecting URL-like specs
// (scheme "://" or an ssh "git@host:" prefix) so "origin/branch" and
// "https://..." are not misinterpreted as fork specs.
func ParseForkBranchSpec(spec string) (ForkBranchSpec, bool) {
	if strings.Contains(spec, "://") || strings.HasPrefix(spec, "git@") {
		return ForkBranchSpec{}, false
	}
	idx := strings.Index(spec, ":")
	if idx <= 0 || idx == len(spec)-1 {
		return ForkBranchSpec{}, false
	}
	owner, branch := spec[:idx], spec[idx+1:]
	if owner == "" || branch == "" {
		return ForkBranchSpec{}, false
	}
	return ForkBranchSpec{Owner: owner, Branch: branch}, true
}

// GetMergeBase resolves the local branch if present, otherwise
// "origin/<branch>", and returns the merge-base commit against HEAD.
func (c *Client) GetMergeBase(ctx context.Context, branch string) (string, error) {
	ref := branch
	if exists, _ := c.BranchExists(ctx, branch); !exists {
		ref = "origin/" + branch
	}
	return c.git("merge-base", "HEAD", ref).Output(ctx)
}

// GetUnmergedBranches returns local branches whose tips are not merged into
// base. Errors from git about unknown/malformed refs (e.g. base not yet
// fetched) are tolerated as "no unmerged branches" rather than surfaced.
func (c *Client) GetUnmergedBranches(ctx context.Context, base string) ([]string, error) {
	out, err := c.git("for-each-ref", "--format=%(refname:short)", "refs/heads", "--no-merged="+base).Output(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "malformed object name") || strings.Contains(err.Error(), "unknown commit") {
			return nil, nil
		}
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

// IsUnmerged reports whether branch is not yet merged into base.
func (c *Client) IsUnmerged(ctx context.Context, branch, base string) (bool, error) {
	unmerged, err := c.GetUnmergedBranches(ctx, base)
	if err != nil {
		return false, err
	}
	for _, b := range unmerged {
		if b == branch {
			return true, nil
		}
	}
	return false, nil
}

// GetGoneBranches returns local branches whose upstream has been deleted
// ("[gone]" in `for-each-ref`'s upstream:track format).
func (c *Client) GetGoneBranches(ctx context.Context) ([]string, error) {
	out, err := c.git("for-each-ref", "--format=%(refname:short)|%(upstream:track)", "refs/heads").Output(ctx)
	if err != nil {
		return nil, err
	}
	var gone []string
	for _, line := range splitNonEmptyLines(out) {
		parts := strings.SplitN(line, "|", 2)
		if len(parts) == 2 && strings.Contains(parts[1], "[gone]") {
			gone = append(gone, parts[0])
		}
	}
	return gone, nil
}

// BranchHasUpstream reports whether branch.<name>.remote and
// branch.<name>.merge are both set.
func (c *Client) BranchHasUpstream(ctx context.Context, branch string) (bool, error) {
	hasRemote, err := c.git("config", "--get", "branch."+branch+".remote").Check(ctx)
	if err != nil {
		return false, err
	}
	hasMerge, err := c.git("config", "--get", "branch."+branch+".merge").Check(ctx)
	if err != nil {
		return false, err
	}
	return hasRemote && hasMerge, nil
}

// UnsetBranchUpstream clears the branch's remote-tracking configuration.
func (c *Client) UnsetBranchUpstream(ctx context.Context, branch string) error {
	_ = c.git("config", "--unset", "branch."+branch+".remote").Run(ctx)
	_ = c.git("config", "--unset", "branch."+branch+".merge").Run(ctx)
	return nil
}

// SetBranchBase records the base ref a branch was created from under the
// per-branch config key `branch.<name>.workmux-base`.
func (c *Client) SetBranchBase(ctx context.Context, branch, base string) error {
	return c.git("config", "--local", "branch."+branch+".workmux-base", base).Run(ctx)
}

// GetBranchBase reads `branch.<name>.workmux-base`, returning an error if
// unset.
func (c *Client) GetBranchBase(ctx context.Context, branch string) (string, error) {
	out, err := c.git("config", "--get", "branch."+branch+".workmux-base").Output(ctx)
	if err != nil {
		return "", fmt.Errorf("branch %q has no recorded base: %w", branch, err)
	}
	return out, nil
}

// ResolveBase returns the persisted base for branch if set, otherwise the
// repository's default branch (falling through to "main" then "master" if
// even that cannot be determined, matching the status engine's permissive
// fallback described in SPEC_FULL.md §4.4, which is intentionally more
// forgiving than the hard failure in DefaultBranch used at branch-creation
// time).
func (c *Client) ResolveBase(ctx context.Context, branch string) string {
	if base, err := c.GetBranchBase(ctx, branch); err == nil && base != "" {
		return base
	}
	if def, err := c.DefaultBranch(ctx); err == nil && def != "" {
		return def
	}
	if exists, _ := c.BranchExists(ctx, "main"); exists {
		return "main"
	}
	return "master"
}

// GenerateBranchSlug lowercases and replaces runs of non-alphanumeric
// characters with a single hyphen, trimming leading/trailing hyphens. Used
// to turn free-form descriptions into git-safe branch fragments.
func GenerateBranchSlug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// aheadBehind is a small helper kept private because status.go's porcelain
// v2 parsing is the primary route callers should use; this remains useful
// for a quick rev-list-based check against a specific upstream spec.
func (c *Client) aheadBehind(ctx context.Context, upstream string) (ahead, behind int, err error) {
	out, err := c.git("rev-list", "--left-right", "--count", upstream+"...HEAD").Output(ctx)
	if err != nil {
		return 0, 0, err
	}
	parts := strings.Fields(out)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	behind, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	ahead, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}
