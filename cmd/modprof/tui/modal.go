package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"modprof/internal/accounts"
	"modprof/internal/store"
)

// Client is the read side of the host API the dialog refreshes from.
type Client interface {
	Profiles() ([]store.Profile, error)
	CurrentProfile() (string, error)
	CemuAccounts() ([]accounts.Account, error)
}

// SavePayload is what the dialog hands to OnSave: the new profile name and
// the persistent id of the associated Cemu account ("" = unassociated).
type SavePayload struct {
	Name        string
	CemuAccount string
}

// Callbacks are supplied by the parent view. The dialog performs no
// mutations itself; every action is forwarded with its tag string.
type Callbacks struct {
	OnSave   func(payload SavePayload, tag string) error
	OnLoad   func(p store.Profile, tag string) error
	OnDelete func(p store.Profile, tag string) error
	OnClose  func()
}

// rowAction selects which per-row control is armed.
type rowAction int

const (
	rowLoad rowAction = iota
	rowDelete
)

// Focus lines from top to bottom. Profile row i sits at lineRows+i.
const (
	lineName = iota
	lineAccount
	lineSave
	lineRows
)

// Modal is the mod profile dialog. It renders a form for saving a new
// profile plus a row per saved profile with load and delete controls.
//
// Showing the dialog is edge-triggered: the hidden→shown transition issues
// one batched read of profiles, current profile, and Cemu accounts, and the
// display state is replaced wholesale when all three settle. Each refresh
// carries a generation number; results from a superseded refresh are
// dropped, so hiding and re-showing mid-fetch never renders stale data.
type Modal struct {
	client Client
	cb     Callbacks

	shown   bool
	busy    bool
	loading bool
	gen     int

	profiles []store.Profile
	current  string
	accounts []accounts.Account
	fetchErr error

	nameInput  textinput.Model
	accountIdx int // 0 = unassociated; i > 0 = accounts[i-1]

	focusLine int
	rowCursor rowAction
	width     int
}

// NewModal builds a hidden dialog over the given client and callbacks.
func NewModal(client Client, cb Callbacks) Modal {
	ti := textinput.New()
	ti.Placeholder = "New profile name"
	ti.CharLimit = 64
	ti.Width = 30
	return Modal{
		client:    client,
		cb:        cb,
		nameInput: ti,
		width:     56,
	}
}

// Show makes the dialog visible and, if it was hidden, starts a refresh.
// Re-showing an already-visible dialog does not refetch.
func (m Modal) Show() (Modal, tea.Cmd) {
	if m.shown {
		return m, nil
	}
	m.shown = true
	m.loading = true
	m.fetchErr = nil
	m.gen++
	m.resetForm()
	return m, refreshCmd(m.client, m.gen)
}

// Hide makes the dialog invisible. An in-flight refresh keeps running but
// its result is discarded on arrival.
func (m *Modal) Hide() {
	m.shown = false
}

// Shown reports dialog visibility.
func (m Modal) Shown() bool { return m.shown }

// SetBusy dims the dialog while the parent runs a mutation. Cosmetic only.
func (m *Modal) SetBusy(busy bool) { m.busy = busy }

// Busy reports the busy flag.
func (m Modal) Busy() bool { return m.busy }

// SetWidth sets the dialog box width and resizes the name input to match.
func (m *Modal) SetWidth(w int) {
	m.width = w
	inputWidth := w - 16 // label, padding, border
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.nameInput.Width = inputWidth
}

// refreshCmd issues the three host reads concurrently and joins them into
// a single RefreshDoneMsg, so partial results are never rendered.
func refreshCmd(client Client, gen int) tea.Cmd {
	return func() tea.Msg {
		var (
			profiles []store.Profile
			current  string
			accts    []accounts.Account
			errs     [3]error
			wg       sync.WaitGroup
		)
		wg.Add(3)
		go func() { defer wg.Done(); profiles, errs[0] = client.Profiles() }()
		go func() { defer wg.Done(); current, errs[1] = client.CurrentProfile() }()
		go func() { defer wg.Done(); accts, errs[2] = client.CemuAccounts() }()
		wg.Wait()

		return RefreshDoneMsg{
			Gen:      gen,
			Profiles: profiles,
			Current:  current,
			Accounts: accts,
			Err:      errors.Join(errs[0], errs[1], errs[2]),
		}
	}
}

// Update handles messages while the dialog is visible.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDoneMsg:
		if msg.Gen != m.gen || !m.shown {
			return m, nil // stale refresh
		}
		m.loading = false
		m.fetchErr = msg.Err
		m.profiles = msg.Profiles
		m.current = msg.Current
		m.accounts = msg.Accounts
		m.resetForm()
		return m, nil

	case tea.KeyMsg:
		if !m.shown {
			return m, nil
		}
		return m.updateKey(msg)
	}

	if !m.shown {
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Modal) updateKey(msg tea.KeyMsg) (Modal, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.cb.OnClose != nil {
			m.cb.OnClose()
		}
		return m, func() tea.Msg { return ModalCloseMsg{} }

	case "up", "shift+tab":
		m.moveFocus(-1)
		return m, nil

	case "down", "tab":
		m.moveFocus(1)
		return m, nil

	case "enter":
		return m.activate()
	}

	// Left/right cycle the account selector and arm row controls. On the
	// name line they belong to the text input.
	if m.focusLine != lineName {
		switch msg.String() {
		case "left", "h":
			if m.focusLine == lineAccount {
				m.cycleAccount(-1)
			} else if m.focusLine >= lineRows {
				m.rowCursor = rowLoad
			}
			return m, nil
		case "right", "l":
			if m.focusLine == lineAccount {
				m.cycleAccount(1)
			} else if m.focusLine >= lineRows {
				m.rowCursor = rowDelete
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// activate runs the control under the focus cursor.
func (m Modal) activate() (Modal, tea.Cmd) {
	switch {
	case m.focusLine == lineName, m.focusLine == lineAccount:
		m.moveFocus(1)
		return m, nil

	case m.focusLine == lineSave:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil // Save is disabled until a name is typed
		}
		payload := SavePayload{Name: name, CemuAccount: m.selectedAccount()}
		var err error
		if m.cb.OnSave != nil {
			err = m.cb.OnSave(payload, "save")
		}
		return m, actionCmd("save", err)

	case m.focusLine >= lineRows:
		i := m.focusLine - lineRows
		if i >= len(m.profiles) {
			return m, nil
		}
		p := m.profiles[i]
		if m.rowCursor == rowDelete {
			var err error
			if m.cb.OnDelete != nil {
				err = m.cb.OnDelete(p, "delete")
			}
			return m, actionCmd("delete", err)
		}
		var err error
		if m.cb.OnLoad != nil {
			err = m.cb.OnLoad(p, "load")
		}
		return m, actionCmd("load", err)
	}
	return m, nil
}

func actionCmd(tag string, err error) tea.Cmd {
	return func() tea.Msg { return ModalActionMsg{Tag: tag, Err: err} }
}

// moveFocus shifts the focus line by delta, clamped to valid lines, and
// keeps the text input's focus state in sync.
func (m *Modal) moveFocus(delta int) {
	last := lineSave
	if len(m.profiles) > 0 {
		last = lineRows + len(m.profiles) - 1
	}

	m.focusLine += delta
	if m.focusLine < lineName {
		m.focusLine = lineName
	}
	if m.focusLine > last {
		m.focusLine = last
	}

	if m.focusLine == lineName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	if m.focusLine >= lineRows {
		m.rowCursor = rowLoad
	}
}

// cycleAccount moves the account selection, wrapping past both ends. Index
// 0 is the blank "unassociated" option.
func (m *Modal) cycleAccount(delta int) {
	n := len(m.accounts) + 1
	m.accountIdx = (m.accountIdx + delta + n) % n
}

// selectedAccount returns the persistent id of the chosen account, or ""
// for the unassociated option.
func (m Modal) selectedAccount() string {
	if m.accountIdx <= 0 || m.accountIdx > len(m.accounts) {
		return ""
	}
	return m.accounts[m.accountIdx-1].PersistentID
}

// resetForm clears the transient form fields. Runs on every refresh, so
// form inputs never persist across a visibility toggle.
func (m *Modal) resetForm() {
	m.nameInput.SetValue("")
	m.accountIdx = 0
	m.focusLine = lineName
	m.rowCursor = rowLoad
	m.nameInput.Focus()
}

// View renders the dialog box. Returns "" when hidden.
func (m Modal) View() string {
	if !m.shown {
		return ""
	}

	var b strings.Builder
	b.WriteString(DialogTitleStyle.Render("Mod Profiles"))
	b.WriteString("\n\n")

	if m.fetchErr != nil {
		b.WriteString(DialogErrorStyle.Render("! " + m.fetchErr.Error()))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(PlaceholderStyle.Render("Fetching profiles..."))
		b.WriteString("\n")
		return m.box(b.String())
	}

	b.WriteString(m.viewForm())
	b.WriteString("\n")
	b.WriteString(m.viewList())
	b.WriteString("\n")
	b.WriteString(DialogHintStyle.Render("↑/↓ move · ←/→ pick · Enter activate · Esc close"))

	return m.box(b.String())
}

func (m Modal) box(content string) string {
	out := DialogStyle.Render(content)
	if m.busy {
		out = lipgloss.NewStyle().Faint(true).Render(out)
	}
	return out
}

func (m Modal) viewForm() string {
	var b strings.Builder

	b.WriteString("Name:    ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")

	accountLabel := "unassociated"
	if m.accountIdx > 0 && m.accountIdx <= len(m.accounts) {
		accountLabel = m.accounts[m.accountIdx-1].Label()
	}
	selector := fmt.Sprintf("‹ %s ›", accountLabel)
	if m.focusLine == lineAccount {
		selector = RowCursorStyle.Render(selector)
	}
	b.WriteString("Account: ")
	b.WriteString(selector)
	b.WriteString("\n\n")

	save := "Save"
	switch {
	case strings.TrimSpace(m.nameInput.Value()) == "":
		b.WriteString(DialogButtonDisabledStyle.Render(save))
	case m.focusLine == lineSave:
		b.WriteString(DialogButtonActiveStyle.Render(save))
	default:
		b.WriteString(DialogButtonInactiveStyle.Render(save))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Modal) viewList() string {
	if len(m.profiles) == 0 {
		return PlaceholderStyle.Render("No profiles yet. Save one to get started.") + "\n"
	}

	var b strings.Builder
	for i, p := range m.profiles {
		focused := m.focusLine == lineRows+i

		cursor := "  "
		if focused {
			cursor = RowCursorStyle.Render("> ")
		}
		b.WriteString(cursor)

		name := p.Name
		if p.Name == m.current {
			name = CurrentProfileStyle.Render(name + " ●")
		}
		b.WriteString(name)

		if p.CemuAccount != "" {
			b.WriteString(AccountSuffixStyle.Render(" · " + p.CemuAccount))
		}

		b.WriteString("  ")
		b.WriteString(m.renderRowButtons(focused))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Modal) renderRowButtons(focused bool) string {
	load, del := "Load", "Delete"
	if !focused {
		return DialogButtonInactiveStyle.Render(load) + " " + DialogButtonInactiveStyle.Render(del)
	}
	if m.rowCursor == rowDelete {
		return DialogButtonInactiveStyle.Render(load) + " " + DialogButtonActiveStyle.Render(del)
	}
	return DialogButtonActiveStyle.Render(load) + " " + DialogButtonInactiveStyle.Render(del)
}
