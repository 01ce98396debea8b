package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"modprof/internal/paths"
	"modprof/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := paths.DataDir()

		profiles, err := store.List(dataDir)
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Println("No profiles yet.")
			return nil
		}

		current, err := store.Current(dataDir)
		if err != nil {
			return err
		}

		for _, p := range profiles {
			marker := " "
			if p.Name == current {
				marker = "*"
			}
			line := fmt.Sprintf("%s %s (saved %s)", marker, p.Name, p.SavedAgo())
			if p.CemuAccount != "" {
				line += fmt.Sprintf(", account %s", p.CemuAccount)
			}
			fmt.Println(line)
		}

		return nil
	},
}

var profileSaveAccount string

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the staged mod setup as a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])

		p, err := store.Save(paths.DataDir(), name, profileSaveAccount, paths.MergedDir())
		if err != nil {
			return err
		}

		fmt.Printf("Saved profile %q\n", p.Name)
		return nil
	},
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a profile and make it current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := paths.DataDir()

		p, err := findProfile(dataDir, args[0])
		if err != nil {
			return err
		}

		if err := store.Load(dataDir, p, paths.MergedDir()); err != nil {
			return err
		}

		fmt.Printf("Loaded profile %q\n", p.Name)
		return nil
	},
}

var profileDeleteForce bool

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := paths.DataDir()

		p, err := findProfile(dataDir, args[0])
		if err != nil {
			return err
		}

		if !profileDeleteForce {
			var confirmed bool
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete profile %q?", p.Name)).
						Description("The profile and its mod snapshot are removed.").
						Value(&confirmed),
				),
			).Run()
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := store.Delete(dataDir, p); err != nil {
			return err
		}

		fmt.Printf("Deleted profile %q\n", p.Name)
		return nil
	},
}

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := store.Current(paths.DataDir())
		if err != nil {
			return err
		}
		if current == "" {
			fmt.Println("No profile loaded.")
			return nil
		}
		fmt.Println(current)
		return nil
	},
}

// findProfile resolves a profile by name, reporting the available names
// when the lookup misses.
func findProfile(dataDir, name string) (store.Profile, error) {
	profiles, err := store.List(dataDir)
	if err != nil {
		return store.Profile{}, err
	}

	var names []string
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}

	if len(names) == 0 {
		return store.Profile{}, fmt.Errorf("profile %q not found (no profiles saved)", name)
	}
	return store.Profile{}, fmt.Errorf("profile %q not found (available: %s)", name, strings.Join(names, ", "))
}

func init() {
	profileSaveCmd.Flags().StringVar(&profileSaveAccount, "account", "", "Cemu account persistent id to associate")
	profileDeleteCmd.Flags().BoolVar(&profileDeleteForce, "force", false, "Delete without confirmation")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileCurrentCmd)
}
