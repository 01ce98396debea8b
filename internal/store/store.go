// Package store persists named mod profiles. A profile is a directory under
// <data>/profiles holding a profile.yaml descriptor and a snapshot of the
// staged mod tree. Which profile is active is tracked by a current-profile
// marker file in the data dir.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"
)

// Profile is a named, persisted mod configuration bundle. Identity is Path.
type Profile struct {
	Name        string    `yaml:"name"`
	CemuAccount string    `yaml:"cemu_account,omitempty"`
	SavedAt     time.Time `yaml:"saved_at"`
	Path        string    `yaml:"-"`
}

// SavedAgo renders SavedAt as a relative time for listings.
func (p Profile) SavedAgo() string {
	if p.SavedAt.IsZero() {
		return "unknown"
	}
	return humanize.Time(p.SavedAt)
}

const (
	descriptorFile = "profile.yaml"
	snapshotDir    = "data"
	currentMarker  = "current-profile"
)

// List returns all profiles under dataDir/profiles, sorted by name.
// Returns an empty slice (not an error) when the profiles dir is missing.
func List(dataDir string) ([]Profile, error) {
	profilesDir := filepath.Join(dataDir, "profiles")

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	profiles := []Profile{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := Read(filepath.Join(profilesDir, e.Name()))
		if err != nil {
			continue // skip dirs without a valid descriptor
		}
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// Read loads the profile descriptor from a profile directory.
func Read(dir string) (Profile, error) {
	data, err := os.ReadFile(filepath.Join(dir, descriptorFile))
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile descriptor: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile descriptor: %w", err)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile descriptor in %s has no name", dir)
	}
	p.Path = dir
	return p, nil
}

// Save snapshots sourceDir into a profile named name, overwriting any
// existing profile with the same directory slug. A missing sourceDir is
// allowed; the profile then records only its descriptor.
func Save(dataDir, name, cemuAccount, sourceDir string) (Profile, error) {
	if strings.TrimSpace(name) == "" {
		return Profile{}, fmt.Errorf("profile name must not be empty")
	}

	dir := filepath.Join(dataDir, "profiles", slugify(name))

	// Profile identity is the slug directory. Overwriting the same name is
	// fine, but a different name mapping to the same slug would silently
	// swallow the existing profile.
	if existing, err := Read(dir); err == nil && existing.Name != name {
		return Profile{}, fmt.Errorf("profile name %q collides with existing profile %q", name, existing.Name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return Profile{}, fmt.Errorf("replacing profile %q: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Profile{}, fmt.Errorf("creating profile dir: %w", err)
	}

	if sourceDir != "" {
		if _, err := os.Stat(sourceDir); err == nil {
			if err := copyTree(sourceDir, filepath.Join(dir, snapshotDir)); err != nil {
				return Profile{}, fmt.Errorf("snapshotting mods for profile %q: %w", name, err)
			}
		}
	}

	p := Profile{
		Name:        name,
		CemuAccount: cemuAccount,
		SavedAt:     time.Now().UTC(),
		Path:        dir,
	}
	if err := writeDescriptor(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load restores a profile's snapshot into destDir and marks it current.
func Load(dataDir string, p Profile, destDir string) error {
	snap := filepath.Join(p.Path, snapshotDir)
	if _, err := os.Stat(snap); err == nil {
		if err := os.RemoveAll(destDir); err != nil {
			return fmt.Errorf("clearing staged mods: %w", err)
		}
		if err := copyTree(snap, destDir); err != nil {
			return fmt.Errorf("restoring profile %q: %w", p.Name, err)
		}
	}
	return SetCurrent(dataDir, p.Name)
}

// Delete removes a profile directory. Deleting the current profile also
// clears the marker.
func Delete(dataDir string, p Profile) error {
	if err := os.RemoveAll(p.Path); err != nil {
		return fmt.Errorf("deleting profile %q: %w", p.Name, err)
	}
	current, err := Current(dataDir)
	if err == nil && current == p.Name {
		return ClearCurrent(dataDir)
	}
	return nil
}

// Current returns the name of the current profile, or "" when none is set.
func Current(dataDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, currentMarker))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading current profile: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrent writes the current-profile marker.
func SetCurrent(dataDir, name string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	path := filepath.Join(dataDir, currentMarker)
	if err := os.WriteFile(path, []byte(name+"\n"), 0644); err != nil {
		return fmt.Errorf("writing current profile: %w", err)
	}
	return nil
}

// ClearCurrent removes the current-profile marker. No error if absent.
func ClearCurrent(dataDir string) error {
	err := os.Remove(filepath.Join(dataDir, currentMarker))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing current profile: %w", err)
	}
	return nil
}

func writeDescriptor(p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile descriptor: %w", err)
	}
	path := filepath.Join(p.Path, descriptorFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing profile descriptor: %w", err)
	}
	return nil
}

// slugify maps a profile name to a filesystem-safe directory name.
func slugify(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	if mapped == "" {
		mapped = "_"
	}
	return mapped
}

// copyTree recursively copies src into dst, preserving file modes.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
