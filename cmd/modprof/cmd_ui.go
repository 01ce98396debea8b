package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"modprof/cmd/modprof/tui"
	"modprof/internal/host"
	"modprof/internal/paths"
	"modprof/internal/settings"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the profile manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(paths.SettingsFile())
		if err != nil {
			return err
		}

		h := host.New(paths.DataDir(), paths.MergedDir(), s)
		root := tui.NewRoot(h)

		if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running ui: %w", err)
		}
		return nil
	},
}
