package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/procexec"
	"github.com/example/workmux/internal/tmux"
)

// setupEnvironment runs the shared post-worktree-creation sequence used by
// both create and open: configured file operations, post-create hooks, and
// window/pane instantiation.
func (e *Engine) setupEnvironment(ctx context.Context, branchName, worktreePath string, opts SetupOptions) (CreateResult, error) {
	result := CreateResult{Branch: branchName, WorktreePath: worktreePath}

	if opts.RunFileOps {
		if err := runFileOps(e.Config.FileOps, e.Git.Dir, worktreePath); err != nil {
			return result, fmt.Errorf("run file operations: %w", err)
		}
	}

	if opts.RunHooks {
		ran, err := runHooks(ctx, e.Config.Hooks, config.HookPostCreate, worktreePath)
		if err != nil {
			return result, fmt.Errorf("run post_create hooks: %w", err)
		}
		result.PostCreateHooksRun = ran
	}

	if !opts.NoWindow {
		panes := e.Config.Panes
		if opts.RunCommand != "" {
			panes = overrideFirstPaneCommand(panes, opts.RunCommand)
		}
		prefix := e.Config.WindowPrefixValue()
		if err := tmux.CreateWorktreeWindow(ctx, prefix, branchName, worktreePath, panes); err != nil {
			return result, fmt.Errorf("create window for %s: %w", branchName, err)
		}
		result.WindowCreated = true
	}

	return result, nil
}

// overrideFirstPaneCommand returns panes with the first entry's command
// replaced, inserting a bare first pane if none was configured.
func overrideFirstPaneCommand(panes []config.PaneConfig, command string) []config.PaneConfig {
	if len(panes) == 0 {
		return []config.PaneConfig{{Command: command}}
	}
	out := make([]config.PaneConfig, len(panes))
	copy(out, panes)
	out[0].Command = command
	return out
}

// runFileOps executes configured copy/symlink operations from the source
// repository into the new worktree. Paths are resolved relative to repoDir
// (src) and worktreeDir (dest).
func runFileOps(ops []config.FileOp, repoDir, worktreeDir string) error {
	for _, op := range ops {
		src := resolvePath(repoDir, op.Src)
		dest := resolvePath(worktreeDir, op.Dest)

		if _, err := os.Stat(src); err != nil {
			logging.Warnf("file_ops: skipping %s: %v", src, err)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create parent directory for %s: %w", dest, err)
		}

		switch op.Kind {
		case config.FileOpSymlink:
			if err := os.Symlink(src, dest); err != nil {
				return fmt.Errorf("symlink %s -> %s: %w", src, dest, err)
			}
		default:
			if err := copyFile(src, dest); err != nil {
				return fmt.Errorf("copy %s -> %s: %w", src, dest, err)
			}
		}
	}
	return nil
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// runHooks runs every configured hook for phase, in the given working
// directory, through sh -c. Returns whether any hook ran.
func runHooks(ctx context.Context, hooks []config.Hook, phase config.HookPhase, workdir string) (bool, error) {
	ran := false
	for _, h := range hooks {
		if h.Phase != phase {
			continue
		}
		ran = true
		logging.Infof("running %s hook: %s", phase, h.Command)
		if err := procexec.New("sh").Args("-c", h.Command).Workdir(workdir).Run(ctx); err != nil {
			return ran, fmt.Errorf("hook %q: %w", h.Command, err)
		}
	}
	return ran, nil
}
