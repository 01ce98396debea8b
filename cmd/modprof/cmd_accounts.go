package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modprof/internal/accounts"
	"modprof/internal/paths"
	"modprof/internal/settings"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List Cemu accounts found in the mlc save tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(paths.SettingsFile())
		if err != nil {
			return err
		}

		mlc, err := s.ResolveMlcDir()
		if err != nil {
			return err
		}

		accts, err := accounts.List(mlc)
		if err != nil {
			return err
		}

		if len(accts) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		for _, a := range accts {
			fmt.Println(a.Label())
		}
		return nil
	},
}
