package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "modprof",
	Short: "Manage mod profiles for Cemu",
	Long:  "modprof saves, loads, and deletes named mod profiles for a Cemu setup, optionally associating each profile with a Cemu account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the TUI
		return uiCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("modprof %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
