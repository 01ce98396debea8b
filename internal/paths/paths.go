package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// DataDir returns ~/.modprof.
func DataDir() string {
	return filepath.Join(home(), ".modprof")
}

// SettingsFile returns ~/.modprof/settings.yaml.
func SettingsFile() string {
	return filepath.Join(DataDir(), "settings.yaml")
}

// ProfilesDir returns ~/.modprof/profiles.
func ProfilesDir() string {
	return filepath.Join(DataDir(), "profiles")
}

// MergedDir returns ~/.modprof/merged, the staged mod tree that profiles
// snapshot and restore.
func MergedDir() string {
	return filepath.Join(DataDir(), "merged")
}
