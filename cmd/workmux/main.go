package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/cli"
	"github.com/example/workmux/internal/version"
)

func init() {
	// Respect CLICOLOR_FORCE for forcing colors when piped, e.g. inside a
	// tmux popup, and NO_COLOR for the inverse.
	if os.Getenv("CLICOLOR_FORCE") == "1" {
		color.NoColor = false
	}
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "workmux",
		Short:   "workmux couples git worktrees to tmux windows",
		Version: version.String(),
		Long: `workmux is a CLI tool that couples git worktrees to tmux windows,
so each branch you're actively working gets its own isolated checkout and
its own terminal window.`,
	}

	rootCmd.AddCommand(cli.CreateCmd())
	rootCmd.AddCommand(cli.OpenCmd())
	rootCmd.AddCommand(cli.CloseCmd())
	rootCmd.AddCommand(cli.MergeCmd())
	rootCmd.AddCommand(cli.RemoveCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.SetWindowStatusCmd())
	rootCmd.AddCommand(cli.LastAgentCmd())
	rootCmd.AddCommand(cli.DashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
