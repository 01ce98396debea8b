package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"modprof/internal/paths"
	"modprof/internal/settings"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure Cemu and game directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(paths.SettingsFile())
		if err != nil {
			return err
		}

		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cemu directory").
					Description("Where Cemu.exe lives").
					Validate(requireDir).
					Value(&s.CemuDir),
				huh.NewInput().
					Title("Game directory").
					Description("Base game content directory").
					Value(&s.GameDir),
				huh.NewInput().
					Title("mlc directory (optional)").
					Description("Leave empty to use <cemu>/mlc01").
					Value(&s.MlcDir),
			),
		).Run()
		if err != nil {
			return err
		}

		if err := settings.Save(paths.SettingsFile(), s); err != nil {
			return err
		}

		fmt.Println("Settings saved.")
		return nil
	},
}

// requireDir validates that the typed path is an existing directory.
func requireDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("required")
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}
