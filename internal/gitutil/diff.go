package gitutil

import "context"

// NumstatSummary runs `git diff --numstat --summary <rangeSpec>`, combining
// per-file line counts with create/delete/rename/copy/mode-change summary
// lines for the dashboard's file-list extraction.
func (c *Client) NumstatSummary(ctx context.Context, rangeSpec string) (string, error) {
	args := []string{"diff", "--numstat", "--summary"}
	if rangeSpec != "" {
		args = append(args, rangeSpec)
	}
	return c.git(args...).OutputRaw(ctx)
}

// UntrackedFiles returns paths reported by `git ls-files --others
// --exclude-standard`.
func (c *Client) UntrackedFiles(ctx context.Context) ([]string, error) {
	out, err := c.git("ls-files", "--others", "--exclude-standard").Output(ctx)
	if err != nil {
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

// Diff runs `git diff <rangeSpec>` and returns the raw unified diff text.
func (c *Client) Diff(ctx context.Context, rangeSpec string) (string, error) {
	args := []string{"diff"}
	if rangeSpec != "" {
		args = append(args, rangeSpec)
	}
	return c.git(args...).OutputRaw(ctx)
}

// Apply stages a unified-diff fragment with `git apply --cached`. reverse
// runs `git apply -R --cached` instead, undoing a previously staged fragment.
func (c *Client) Apply(ctx context.Context, patch string, reverse bool) error {
	args := []string{"apply", "--cached", "--whitespace=nowarn"}
	if reverse {
		args = append(args, "-R")
	}
	return c.git(args...).Stdin([]byte(patch)).Run(ctx)
}

// DiffAgainstEmpty produces the diff for an untracked file by comparing it
// against /dev/null, the same trick `git diff --no-index` uses to render a
// whole-file addition.
func (c *Client) DiffAgainstEmpty(ctx context.Context, path string) (string, error) {
	out, err := c.git("diff", "--no-index", "--", "/dev/null", path).OutputRaw(ctx)
	// git diff --no-index exits 1 when there is a difference, which Output
	// would treat as failure; OutputRaw does too, so retry tolerating exit 1.
	if err != nil {
		code, raw, ccErr := c.git("diff", "--no-index", "--", "/dev/null", path).ExitCode(ctx)
		if ccErr != nil {
			return "", ccErr
		}
		if code == 1 {
			return raw, nil
		}
		return "", err
	}
	return out, nil
}
