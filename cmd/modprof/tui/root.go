package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"modprof/internal/store"
)

// HostAPI extends the dialog's read-only Client with the mutations the
// parent performs on its behalf.
type HostAPI interface {
	Client
	SaveProfile(name, cemuAccount string) (store.Profile, error)
	LoadProfile(p store.Profile) error
	DeleteProfile(p store.Profile) error
}

// Root is the main screen. It shows the current profile, opens the profile
// dialog, and performs the save/load/delete the dialog forwards to it.
type Root struct {
	api   HostAPI
	modal Modal

	current  string
	status   string
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewRoot builds the main screen over a host API.
func NewRoot(api HostAPI) Root {
	r := Root{api: api}
	r.modal = NewModal(api, Callbacks{
		OnSave: func(p SavePayload, _ string) error {
			_, err := api.SaveProfile(p.Name, p.CemuAccount)
			return err
		},
		OnLoad: func(p store.Profile, _ string) error {
			return api.LoadProfile(p)
		},
		OnDelete: func(p store.Profile, _ string) error {
			return api.DeleteProfile(p)
		},
		// Dismissal is driven by ModalCloseMsg below.
		OnClose: func() {},
	})
	return r
}

// Init satisfies tea.Model.
func (r Root) Init() tea.Cmd {
	return currentProfileCmd(r.api)
}

// currentProfileCmd refreshes the main screen's current-profile line.
func currentProfileCmd(api HostAPI) tea.Cmd {
	return func() tea.Msg {
		name, err := api.CurrentProfile()
		if err != nil {
			name = ""
		}
		return CurrentProfileMsg{Name: name}
	}
}

// Update satisfies tea.Model.
func (r Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.ready = true
		r.modal.SetWidth(DialogMaxWidth(msg.Width))
		return r, nil

	case CurrentProfileMsg:
		r.current = msg.Name
		return r, nil

	case ModalActionMsg:
		r.status = actionStatus(msg)
		// The dialog only reads; after a mutation the parent re-triggers
		// its refresh by toggling visibility.
		r.modal.Hide()
		var cmd tea.Cmd
		r.modal, cmd = r.modal.Show()
		return r, tea.Batch(cmd, currentProfileCmd(r.api))

	case ModalCloseMsg:
		r.modal.Hide()
		return r, currentProfileCmd(r.api)
	}

	// When the dialog is open, it gets every remaining message.
	if r.modal.Shown() {
		var cmd tea.Cmd
		r.modal, cmd = r.modal.Update(msg)
		return r, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "p", "enter":
			r.status = ""
			var cmd tea.Cmd
			r.modal, cmd = r.modal.Show()
			return r, cmd
		case "q", "esc", "ctrl+c":
			r.quitting = true
			return r, tea.Quit
		}
	}

	return r, nil
}

// actionStatus maps a completed dialog action to a status line.
func actionStatus(msg ModalActionMsg) string {
	if msg.Err != nil {
		return msg.Err.Error()
	}
	switch msg.Tag {
	case "save":
		return "Profile saved."
	case "load":
		return "Profile loaded."
	case "delete":
		return "Profile deleted."
	}
	return ""
}

// View satisfies tea.Model.
func (r Root) View() string {
	if r.quitting {
		return ""
	}
	if !r.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(AppTitleStyle.Render("modprof"))
	b.WriteString("\n\n")

	current := r.current
	if current == "" {
		current = "(none)"
	}
	b.WriteString("Current profile: " + current)
	b.WriteString("\n")

	if r.status != "" {
		b.WriteString(r.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StatusLineStyle.Render("p: profiles · q: quit"))

	background := b.String()
	if r.modal.Shown() {
		return Composite(background, r.modal.View(), r.width, r.height)
	}
	return background
}

// Ensure Root satisfies tea.Model at compile time.
var _ tea.Model = Root{}
