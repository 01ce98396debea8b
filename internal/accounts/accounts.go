// Package accounts enumerates Cemu user accounts from the mlc save tree.
//
// Cemu keeps one directory per account under mlc01/usr/save/system/act,
// named by the account's persistent id (eight hex digits). Each directory
// holds an account.dat file of key=value lines; the MiiName value is the
// display name, hex-encoded as UTF-16BE and zero-padded.
package accounts

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf16"
)

// Account is one Cemu user account.
type Account struct {
	// PersistentID is the account directory name, e.g. "80000001".
	PersistentID string
	// MiiName is the decoded display name. Falls back to the AccountId
	// field, then the persistent id, when no Mii name is present.
	MiiName string
}

// Label renders the account the way selection lists display it.
func (a Account) Label() string {
	return fmt.Sprintf("%s (%s)", a.MiiName, a.PersistentID)
}

// List scans the act directory under mlcDir and returns all accounts,
// sorted by persistent id. A missing act directory yields an empty list,
// not an error: a fresh mlc tree simply has no accounts yet.
func List(mlcDir string) ([]Account, error) {
	actDir := filepath.Join(mlcDir, "usr", "save", "system", "act")

	entries, err := os.ReadDir(actDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Account{}, nil
		}
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	var accts []Account
	for _, e := range entries {
		if !e.IsDir() || !isPersistentID(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(actDir, e.Name(), "account.dat"))
		if err != nil {
			// Directories without an account.dat (e.g. the "common"
			// save dir) are not accounts.
			continue
		}
		accts = append(accts, parseAccount(e.Name(), data))
	}

	sort.Slice(accts, func(i, j int) bool {
		return accts[i].PersistentID < accts[j].PersistentID
	})
	return accts, nil
}

// isPersistentID reports whether name looks like an account directory:
// exactly eight hex digits.
func isPersistentID(name string) bool {
	if len(name) != 8 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// parseAccount extracts the display name from account.dat contents.
func parseAccount(persistentID string, data []byte) Account {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(strings.TrimRight(value, "\r"))
	}

	name := decodeMiiName(fields["MiiName"])
	if name == "" {
		name = fields["AccountId"]
	}
	if name == "" {
		name = persistentID
	}

	return Account{PersistentID: persistentID, MiiName: name}
}

// decodeMiiName decodes a hex-encoded UTF-16BE Mii name, dropping the
// zero padding. Returns "" for empty or undecodable input.
func decodeMiiName(encoded string) string {
	raw, err := hex.DecodeString(encoded)
	if err != nil || len(raw) < 2 {
		return ""
	}

	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		u := uint16(raw[i])<<8 | uint16(raw[i+1])
		if u == 0 {
			break
		}
		units = append(units, u)
	}

	return string(utf16.Decode(units))
}
