package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/dashboard"
	"github.com/example/workmux/internal/state"
	"github.com/example/workmux/internal/tmux"
)

// DashboardCmd returns the dashboard command.
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive agent dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}

			driver, err := tmux.NewDriver()
			if err != nil {
				return fmt.Errorf("connect to tmux: %w", err)
			}
			store, err := state.New()
			if err != nil {
				return fmt.Errorf("open state store: %w", err)
			}

			model := dashboard.New(driver, store, cfg)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	return cmd
}
