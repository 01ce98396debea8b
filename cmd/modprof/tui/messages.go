package tui

import (
	"modprof/internal/accounts"
	"modprof/internal/store"
)

// --- Inter-component messages ---

// RefreshDoneMsg carries the joined result of one dialog refresh: the
// profile list, current profile name, and Cemu accounts are replaced as a
// single batch. Gen ties the result to the refresh that requested it;
// results from a superseded refresh are discarded.
type RefreshDoneMsg struct {
	Gen      int
	Profiles []store.Profile
	Current  string
	Accounts []accounts.Account
	Err      error
}

// ModalActionMsg reports that a dialog action fired its parent callback.
// Tag is "save", "load", or "delete".
type ModalActionMsg struct {
	Tag string
	Err error
}

// ModalCloseMsg is emitted when the dialog is dismissed.
type ModalCloseMsg struct{}

// CurrentProfileMsg refreshes the main screen's current-profile line.
type CurrentProfileMsg struct{ Name string }
