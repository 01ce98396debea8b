package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modprof/internal/accounts"
	"modprof/internal/store"
)

// fakeClient counts reads so tests can assert the edge-triggered refresh
// fetches each host value exactly once.
type fakeClient struct {
	profiles []store.Profile
	current  string
	accounts []accounts.Account
	err      error

	profileCalls int
	currentCalls int
	accountCalls int
}

func (f *fakeClient) Profiles() ([]store.Profile, error) {
	f.profileCalls++
	return f.profiles, f.err
}

func (f *fakeClient) CurrentProfile() (string, error) {
	f.currentCalls++
	return f.current, f.err
}

func (f *fakeClient) CemuAccounts() ([]accounts.Account, error) {
	f.accountCalls++
	return f.accounts, f.err
}

// cbRecorder records every forwarded action.
type cbRecorder struct {
	saves    []SavePayload
	saveTags []string
	loads    []store.Profile
	loadTags []string
	deletes  []store.Profile
	delTags  []string
	closes   int
}

func (r *cbRecorder) callbacks() Callbacks {
	return Callbacks{
		OnSave: func(p SavePayload, tag string) error {
			r.saves = append(r.saves, p)
			r.saveTags = append(r.saveTags, tag)
			return nil
		},
		OnLoad: func(p store.Profile, tag string) error {
			r.loads = append(r.loads, p)
			r.loadTags = append(r.loadTags, tag)
			return nil
		},
		OnDelete: func(p store.Profile, tag string) error {
			r.deletes = append(r.deletes, p)
			r.delTags = append(r.delTags, tag)
			return nil
		},
		OnClose: func() { r.closes++ },
	}
}

// shownModal shows the modal and applies its refresh result.
func shownModal(t *testing.T, client *fakeClient, cb Callbacks) Modal {
	t.Helper()
	m := NewModal(client, cb)
	m, cmd := m.Show()
	require.NotNil(t, cmd)
	msg, ok := cmd().(RefreshDoneMsg)
	require.True(t, ok)
	m, _ = m.Update(msg)
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(t *testing.T, m Modal, s string) Modal {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestShowFetchesOnce(t *testing.T) {
	client := &fakeClient{
		profiles: []store.Profile{{Name: "work", Path: "/p/work"}},
		current:  "work",
		accounts: []accounts.Account{{PersistentID: "80000001", MiiName: "Link"}},
	}
	m := shownModal(t, client, Callbacks{})

	assert.Equal(t, 1, client.profileCalls)
	assert.Equal(t, 1, client.currentCalls)
	assert.Equal(t, 1, client.accountCalls)

	// State reflects the resolved batch.
	assert.Equal(t, client.profiles, m.profiles)
	assert.Equal(t, "work", m.current)
	assert.Equal(t, client.accounts, m.accounts)
	assert.False(t, m.loading)
}

func TestShowWhileShownDoesNotRefetch(t *testing.T) {
	client := &fakeClient{}
	m := shownModal(t, client, Callbacks{})

	m, cmd := m.Show()
	assert.Nil(t, cmd, "re-showing a visible dialog must not refetch")
	assert.Equal(t, 1, client.profileCalls)
	assert.True(t, m.Shown())
}

func TestStaleRefreshDiscarded(t *testing.T) {
	client := &fakeClient{current: "old"}
	m := NewModal(client, Callbacks{})

	m, cmd1 := m.Show()
	require.NotNil(t, cmd1)
	staleMsg := cmd1().(RefreshDoneMsg)

	// Hide and re-show before the first result is applied.
	m.Hide()
	client.current = "new"
	m, cmd2 := m.Show()
	require.NotNil(t, cmd2)

	// The superseded result must not land.
	m, _ = m.Update(staleMsg)
	assert.True(t, m.loading)
	assert.Empty(t, m.current)

	freshMsg := cmd2().(RefreshDoneMsg)
	m, _ = m.Update(freshMsg)
	assert.False(t, m.loading)
	assert.Equal(t, "new", m.current)
}

func TestRefreshAfterHideDiscarded(t *testing.T) {
	client := &fakeClient{current: "work"}
	m := NewModal(client, Callbacks{})

	m, cmd := m.Show()
	msg := cmd().(RefreshDoneMsg)
	m.Hide()

	m, _ = m.Update(msg)
	assert.Empty(t, m.current, "result arriving after hide must be dropped")
}

func TestRefreshErrorSurfaces(t *testing.T) {
	client := &fakeClient{err: errors.New("mlc tree unreadable")}
	m := shownModal(t, client, Callbacks{})

	require.Error(t, m.fetchErr)
	assert.Contains(t, m.View(), "mlc tree unreadable")
}

func TestFormResetOnRefresh(t *testing.T) {
	client := &fakeClient{accounts: []accounts.Account{{PersistentID: "80000001", MiiName: "Link"}}}
	m := shownModal(t, client, Callbacks{})

	m = typeText(t, m, "draft")
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyRight))
	require.Equal(t, "80000001", m.selectedAccount())

	// A fresh refresh wipes the transient form state.
	m, _ = m.Update(RefreshDoneMsg{Gen: m.gen, Accounts: client.accounts})
	assert.Empty(t, m.nameInput.Value())
	assert.Equal(t, "", m.selectedAccount())
	assert.Equal(t, lineName, m.focusLine)
}

func TestEmptyListPlaceholder(t *testing.T) {
	m := shownModal(t, &fakeClient{}, Callbacks{})
	assert.Contains(t, m.View(), "No profiles yet")
}

func TestRowsRenderNameAccountAndControls(t *testing.T) {
	client := &fakeClient{
		profiles: []store.Profile{
			{Name: "work", CemuAccount: "80000001", Path: "/p/work"},
			{Name: "vanilla", Path: "/p/vanilla"},
		},
		current: "vanilla",
	}
	m := shownModal(t, client, Callbacks{})

	view := m.View()
	assert.Contains(t, view, "work")
	assert.Contains(t, view, "80000001")
	assert.Contains(t, view, "vanilla ●")
	assert.Contains(t, view, "Load")
	assert.Contains(t, view, "Delete")
	assert.NotContains(t, view, "No profiles yet")
}

func TestSaveDisabledWithEmptyName(t *testing.T) {
	rec := &cbRecorder{}
	m := shownModal(t, &fakeClient{}, rec.callbacks())

	// Focus the Save control and press Enter.
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	require.Equal(t, lineSave, m.focusLine)

	_, cmd := m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, rec.saves)
}

func TestSaveForwardsPayloadAndTag(t *testing.T) {
	rec := &cbRecorder{}
	client := &fakeClient{accounts: []accounts.Account{
		{PersistentID: "80000001", MiiName: "Link"},
		{PersistentID: "80000002", MiiName: "Zelda"},
	}}
	m := shownModal(t, client, rec.callbacks())

	m = typeText(t, m, "speedrun")
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyRight)) // unassociated → Link
	m, _ = m.Update(key(tea.KeyRight)) // Link → Zelda
	m, _ = m.Update(key(tea.KeyDown))
	require.Equal(t, lineSave, m.focusLine)

	m, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	require.Len(t, rec.saves, 1)
	assert.Equal(t, SavePayload{Name: "speedrun", CemuAccount: "80000002"}, rec.saves[0])
	assert.Equal(t, []string{"save"}, rec.saveTags)

	action, ok := cmd().(ModalActionMsg)
	require.True(t, ok)
	assert.Equal(t, "save", action.Tag)
	assert.NoError(t, action.Err)
}

func TestLoadAndDeleteForwardProfileAndTag(t *testing.T) {
	profiles := []store.Profile{
		{Name: "work", Path: "/p/work"},
		{Name: "vanilla", Path: "/p/vanilla"},
	}

	t.Run("load", func(t *testing.T) {
		rec := &cbRecorder{}
		m := shownModal(t, &fakeClient{profiles: profiles}, rec.callbacks())

		// Down past name, account, save to the second row.
		for i := 0; i < 4; i++ {
			m, _ = m.Update(key(tea.KeyDown))
		}
		require.Equal(t, lineRows+1, m.focusLine)

		m, cmd := m.Update(key(tea.KeyEnter))
		require.NotNil(t, cmd)

		require.Len(t, rec.loads, 1)
		assert.Equal(t, "vanilla", rec.loads[0].Name)
		assert.Equal(t, []string{"load"}, rec.loadTags)
		assert.Equal(t, "load", cmd().(ModalActionMsg).Tag)
	})

	t.Run("delete", func(t *testing.T) {
		rec := &cbRecorder{}
		m := shownModal(t, &fakeClient{profiles: profiles}, rec.callbacks())

		for i := 0; i < 3; i++ {
			m, _ = m.Update(key(tea.KeyDown))
		}
		require.Equal(t, lineRows, m.focusLine)
		m, _ = m.Update(key(tea.KeyRight)) // arm Delete

		m, cmd := m.Update(key(tea.KeyEnter))
		require.NotNil(t, cmd)

		require.Len(t, rec.deletes, 1)
		assert.Equal(t, "work", rec.deletes[0].Name)
		assert.Equal(t, []string{"delete"}, rec.delTags)
		assert.Equal(t, "delete", cmd().(ModalActionMsg).Tag)
		assert.Empty(t, rec.loads)
	})
}

func TestActionCallbackErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	cb := Callbacks{
		OnSave: func(SavePayload, string) error { return boom },
	}
	m := shownModal(t, &fakeClient{}, cb)

	m = typeText(t, m, "x")
	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	m, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	action := cmd().(ModalActionMsg)
	assert.ErrorIs(t, action.Err, boom)
}

func TestEscForwardsClose(t *testing.T) {
	rec := &cbRecorder{}
	m := shownModal(t, &fakeClient{}, rec.callbacks())

	m, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)

	assert.Equal(t, 1, rec.closes)
	_, ok := cmd().(ModalCloseMsg)
	assert.True(t, ok)
}

func TestAccountSelectorWraps(t *testing.T) {
	client := &fakeClient{accounts: []accounts.Account{
		{PersistentID: "80000001", MiiName: "Link"},
	}}
	m := shownModal(t, client, Callbacks{})
	m, _ = m.Update(key(tea.KeyDown))
	require.Equal(t, lineAccount, m.focusLine)

	assert.Equal(t, "", m.selectedAccount())

	m, _ = m.Update(key(tea.KeyRight))
	assert.Equal(t, "80000001", m.selectedAccount())

	m, _ = m.Update(key(tea.KeyRight)) // wraps back to unassociated
	assert.Equal(t, "", m.selectedAccount())

	m, _ = m.Update(key(tea.KeyLeft)) // wraps backwards
	assert.Equal(t, "80000001", m.selectedAccount())
}

func TestAccountSelectorLabels(t *testing.T) {
	client := &fakeClient{accounts: []accounts.Account{
		{PersistentID: "80000001", MiiName: "Link"},
	}}
	m := shownModal(t, client, Callbacks{})

	assert.Contains(t, m.View(), "unassociated")

	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyRight))
	assert.Contains(t, m.View(), "Link (80000001)")
}

func TestBusyIsCosmetic(t *testing.T) {
	rec := &cbRecorder{}
	m := shownModal(t, &fakeClient{profiles: []store.Profile{{Name: "work", Path: "/p"}}}, rec.callbacks())

	m.SetBusy(true)
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), "work", "busy only dims, content still renders")

	// Controls keep working while busy.
	for i := 0; i < 3; i++ {
		m, _ = m.Update(key(tea.KeyDown))
	}
	m, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Len(t, rec.loads, 1)
}

func TestHiddenModalRendersNothing(t *testing.T) {
	m := NewModal(&fakeClient{}, Callbacks{})
	assert.Equal(t, "", m.View())
	assert.False(t, m.Shown())
}

func TestFocusClamps(t *testing.T) {
	m := shownModal(t, &fakeClient{}, Callbacks{})

	// No profiles: focus stops at Save.
	for i := 0; i < 5; i++ {
		m, _ = m.Update(key(tea.KeyDown))
	}
	assert.Equal(t, lineSave, m.focusLine)

	for i := 0; i < 5; i++ {
		m, _ = m.Update(key(tea.KeyUp))
	}
	assert.Equal(t, lineName, m.focusLine)
	assert.True(t, m.nameInput.Focused())
}
