package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	var showPR bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worktrees",
		Long: `List all worktrees (other than the repository's main worktree)
with their branch, tmux window, unmerged, and path status.

--pr additionally reserves a PR column; populating it requires a PR-lookup
collaborator this build doesn't wire in, so the column shows "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			infos, err := engine.List(ctx, nil)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No worktrees found.")
				fmt.Println()
				fmt.Println("Create one with: workmux create <branch>")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			if showPR {
				fmt.Fprintln(w, "BRANCH\tPR\tMUX\tUNMERGED\tPATH")
			} else {
				fmt.Fprintln(w, "BRANCH\tMUX\tUNMERGED\tPATH")
			}

			for _, info := range infos {
				mux := "-"
				if info.HasMuxWindow {
					mux = "yes"
				}
				unmerged := "-"
				if info.HasUnmerged {
					unmerged = "yes"
				}
				if showPR {
					pr := "-"
					if info.PRInfo != nil {
						pr = fmt.Sprintf("#%d %s", info.PRInfo.Number, info.PRInfo.State)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Branch, pr, mux, unmerged, info.Path)
				} else {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Branch, mux, unmerged, info.Path)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&showPR, "pr", false, "show a PR status column")

	return cmd
}
