// Package procexec is the single choke point through which workmux shells
// out to external tools (git, tmux, sh). Every other package that needs to
// run a child process builds a Cmd rather than calling os/exec directly, so
// stderr capture and error wrapping stay uniform. The one exception is
// diffstat's pipe through the delta pretty-diff renderer, which uses os/exec.
package procexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Cmd is a builder for an external command invocation.
type Cmd struct {
	name    string
	args    []string
	workdir string
	stdin   []byte
	env     []string
}

// New starts a builder for the given program name.
func New(name string) *Cmd {
	return &Cmd{name: name}
}

// Arg appends a single argument.
func (c *Cmd) Arg(arg string) *Cmd {
	c.args = append(c.args, arg)
	return c
}

// Args appends multiple arguments.
func (c *Cmd) Args(args ...string) *Cmd {
	c.args = append(c.args, args...)
	return c
}

// Workdir sets the working directory for the command.
func (c *Cmd) Workdir(dir string) *Cmd {
	c.workdir = dir
	return c
}

// Stdin sets the bytes to feed the child process on stdin.
func (c *Cmd) Stdin(data []byte) *Cmd {
	c.stdin = data
	return c
}

// Env appends extra environment variables (in addition to the parent's) in
// "KEY=VALUE" form.
func (c *Cmd) Env(kv ...string) *Cmd {
	c.env = append(c.env, kv...)
	return c
}

func (c *Cmd) build(ctx context.Context) *exec.Cmd {
	var cmd *exec.Cmd
	if ctx != nil {
		cmd = exec.CommandContext(ctx, c.name, c.args...)
	} else {
		cmd = exec.Command(c.name, c.args...)
	}
	if c.workdir != "" {
		cmd.Dir = c.workdir
	}
	if len(c.env) > 0 {
		cmd.Env = append(cmd.Environ(), c.env...)
	}
	if c.stdin != nil {
		cmd.Stdin = bytes.NewReader(c.stdin)
	}
	return cmd
}

func (c *Cmd) describe() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + " " + strings.Join(c.args, " ")
}

// Run executes the command, requiring a zero exit status. On failure the
// returned error wraps the underlying exec error and includes the trailing
// stderr output.
func (c *Cmd) Run(ctx context.Context) error {
	_, err := c.Output(ctx)
	return err
}

// Output executes the command and returns trimmed stdout. A non-zero exit
// status is an error that includes the captured stderr tail.
func (c *Cmd) Output(ctx context.Context) (string, error) {
	cmd := c.build(ctx)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrText := strings.TrimSpace(stderr.String())
		if stderrText == "" {
			return "", fmt.Errorf("%s: %w", c.describe(), err)
		}
		return "", fmt.Errorf("%s: %w: %s", c.describe(), err, stderrText)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// OutputRaw is like Output but does not trim the returned stdout, for
// callers that care about exact formatting (e.g. diff text).
func (c *Cmd) OutputRaw(ctx context.Context) (string, error) {
	cmd := c.build(ctx)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrText := strings.TrimSpace(stderr.String())
		if stderrText == "" {
			return stdout.String(), fmt.Errorf("%s: %w", c.describe(), err)
		}
		return stdout.String(), fmt.Errorf("%s: %w: %s", c.describe(), err, stderrText)
	}
	return stdout.String(), nil
}

// Check executes the command and reports success as a bool rather than an
// error, for commands used purely as predicates (e.g. `git rev-parse
// --verify`). A failure to even start the process is still a hard error.
func (c *Cmd) Check(ctx context.Context) (bool, error) {
	cmd := c.build(ctx)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", c.describe(), err)
}

// ExitCode runs the command and returns its exit code without treating a
// non-zero code as an error. Used where multiple non-zero codes carry
// distinct meaning (e.g. git merge-tree's conflict-vs-unsupported split).
func (c *Cmd) ExitCode(ctx context.Context) (int, string, error) {
	cmd := c.build(ctx)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return 0, stdout.String(), nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stdout.String(), nil
	}
	return -1, stdout.String(), fmt.Errorf("%s: %w", c.describe(), err)
}

// Interactive runs the command inheriting the controlling terminal's
// stdin/stdout/stderr, for tools that need direct user interaction (commit
// editor, `git stash --patch`).
func (c *Cmd) Interactive(ctx context.Context) error {
	cmd := c.build(ctx)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.describe(), err)
	}
	return nil
}
