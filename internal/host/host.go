// Package host is the boundary between the UI and the application backend.
// The profile dialog talks to a Host through an interface so tests can
// substitute a fake.
package host

import (
	"modprof/internal/accounts"
	"modprof/internal/settings"
	"modprof/internal/store"
)

// Host exposes profile reads and mutations over the data dir plus Cemu
// account discovery from the configured mlc tree.
type Host struct {
	dataDir   string
	mergedDir string
	settings  settings.Settings
}

// New builds a Host. mergedDir is the staged mod tree that profiles
// snapshot on save and restore on load.
func New(dataDir, mergedDir string, s settings.Settings) *Host {
	return &Host{dataDir: dataDir, mergedDir: mergedDir, settings: s}
}

// Profiles lists all saved profiles.
func (h *Host) Profiles() ([]store.Profile, error) {
	return store.List(h.dataDir)
}

// CurrentProfile returns the name of the active profile, or "".
func (h *Host) CurrentProfile() (string, error) {
	return store.Current(h.dataDir)
}

// CemuAccounts enumerates accounts from the resolved mlc directory.
func (h *Host) CemuAccounts() ([]accounts.Account, error) {
	mlc, err := h.settings.ResolveMlcDir()
	if err != nil {
		return nil, err
	}
	return accounts.List(mlc)
}

// SaveProfile snapshots the staged mod tree under the given name.
func (h *Host) SaveProfile(name, cemuAccount string) (store.Profile, error) {
	return store.Save(h.dataDir, name, cemuAccount, h.mergedDir)
}

// LoadProfile restores a profile's snapshot and marks it current.
func (h *Host) LoadProfile(p store.Profile) error {
	return store.Load(h.dataDir, p, h.mergedDir)
}

// DeleteProfile removes a profile.
func (h *Host) DeleteProfile(p store.Profile) error {
	return store.Delete(h.dataDir, p)
}
