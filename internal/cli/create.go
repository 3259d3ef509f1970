package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/workflow"
)

// CreateCmd returns the create command.
func CreateCmd() *cobra.Command {
	var base string
	var noHooks bool
	var noFileOps bool
	var noWindow bool
	var runCmd string

	cmd := &cobra.Command{
		Use:   "create <spec>",
		Short: "Create a new worktree and tmux window",
		Long: `Create a new worktree and tmux window.

spec may be an existing local branch, a brand new branch name, a
"<remote>/<branch>" spec that tracks a remote branch, or a "<owner>:<branch>"
spec that tracks a contributor's fork.

Examples:
  workmux create feature-x
  workmux create origin/feature-x
  workmux create alice:feature-x --base main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			opts := workflow.CreateOptions{
				Base: base,
				Setup: workflow.SetupOptions{
					RunHooks:   !noHooks,
					RunFileOps: !noFileOps,
					NoWindow:   noWindow,
					RunCommand: runCmd,
				},
			}

			result, err := engine.Create(ctx, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created worktree for %s\n", result.Branch)
			fmt.Printf("  path: %s\n", result.WorktreePath)
			if result.Base != "" {
				fmt.Printf("  base: %s\n", result.Base)
			}
			if result.WindowCreated {
				fmt.Printf("  window: %s%s\n", engine.Config.WindowPrefixValue(), result.Branch)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base ref for a brand new branch")
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "skip post_create hooks")
	cmd.Flags().BoolVar(&noFileOps, "no-file-ops", false, "skip configured file copy/symlink operations")
	cmd.Flags().BoolVar(&noWindow, "no-window", false, "don't create a tmux window")
	cmd.Flags().StringVar(&runCmd, "run", "", "override the first pane's command")

	return cmd
}
