package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"profilemgr/config"
	"profilemgr/config/models"
)

// ViewState represents the current view state
type ViewState int

const (
	ViewMain   ViewState = iota // Profile list
	ViewAdd                     // Add profile form
	ViewRemove                  // Remove confirmation
	ViewClear                   // Clear confirmation
)

// Model is the core state model for the interactive menu
type Model struct {
	manager  *config.Manager
	profiles []models.Profile
	active   string

	cursor    int
	viewState ViewState
	keys      KeyMap

	// Add form
	formInputs []textinput.Model
	formFocus  int
	formOAuth  bool

	message  string
	errorMsg string

	width  int
	height int
}

// NewModel creates a new menu model
func NewModel(manager *config.Manager) Model {
	return Model{
		manager:   manager,
		viewState: ViewMain,
		keys:      DefaultKeyMap(),
		width:     80,
		height:    24,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return loadProfiles(m.manager)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProfilesLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, tea.Quit
		}
		m.profiles = msg.Profiles
		m.active = msg.Active
		if len(m.profiles) > 0 && m.cursor >= len(m.profiles) {
			m.cursor = len(m.profiles) - 1
		}
		return m, nil

	case SwitchedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.message = "Switched to: " + msg.Name
		return m, tea.Quit

	case AddedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.viewState = ViewMain
			return m, nil
		}
		if msg.Activated {
			m.message = "Profile '" + msg.Profile.Name + "' added and activated (first profile)."
			return m, tea.Quit
		}
		m.message = "Profile '" + msg.Profile.Name + "' added."
		m.viewState = ViewMain
		m.formInputs = nil
		return m, loadProfiles(m.manager)

	case RemovedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.viewState = ViewMain
			return m, nil
		}
		m.message = "Profile '" + msg.Name + "' removed."
		if msg.Outcome.WasActive {
			// The active environment changed; exit so it gets sourced.
			if msg.Outcome.NewActive != "" {
				m.message += " Active profile changed to: " + msg.Outcome.NewActive
			}
			return m, tea.Quit
		}
		m.viewState = ViewMain
		return m, loadProfiles(m.manager)

	case ClearedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.viewState = ViewMain
			return m, nil
		}
		m.message = "Cleared all environment variables."
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyMsg dispatches key presses per view state
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewState {
	case ViewAdd:
		return m.updateForm(msg)
	case ViewRemove:
		return m.updateRemoveConfirm(msg)
	case ViewClear:
		return m.updateClearConfirm(msg)
	}
	return m.updateMain(msg)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.profiles) > 0 {
			return m, switchProfile(m.manager, m.profiles[m.cursor].Name)
		}

	case key.Matches(msg, m.keys.Add):
		m.errorMsg = ""
		m.enterAddForm(false)

	case key.Matches(msg, m.keys.ImportOAuth):
		if m.manager.ExtractOAuthInfo() == nil {
			m.errorMsg = "No OAuth account found in ~/.claude.json. Run 'claude setup-token' first."
			return m, nil
		}
		m.errorMsg = ""
		m.enterAddForm(true)

	case key.Matches(msg, m.keys.Remove):
		if len(m.profiles) > 0 {
			m.errorMsg = ""
			m.viewState = ViewRemove
		}

	case key.Matches(msg, m.keys.Clear):
		m.errorMsg = ""
		m.viewState = ViewClear
	}
	return m, nil
}

func (m Model) updateRemoveConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, removeProfile(m.manager, m.profiles[m.cursor].Name)
	case "n", "N", "esc":
		m.viewState = ViewMain
	}
	return m, nil
}

func (m Model) updateClearConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, clearEnvironment(m.manager)
	case "n", "N", "esc":
		m.viewState = ViewMain
	}
	return m, nil
}

// loadProfiles reloads the store
func loadProfiles(manager *config.Manager) tea.Cmd {
	return func() tea.Msg {
		profiles, active, err := manager.List()
		return ProfilesLoadedMsg{Profiles: profiles, Active: active, Err: err}
	}
}

// switchProfile activates the named profile
func switchProfile(manager *config.Manager, name string) tea.Cmd {
	return func() tea.Msg {
		return SwitchedMsg{Name: name, Err: manager.Switch(name)}
	}
}

// removeProfile deletes the named profile
func removeProfile(manager *config.Manager, name string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := manager.Remove(name)
		return RemovedMsg{Name: name, Outcome: outcome, Err: err}
	}
}

// clearEnvironment clears every managed variable and setting
func clearEnvironment(manager *config.Manager) tea.Cmd {
	return func() tea.Msg {
		return ClearedMsg{Err: manager.Clear()}
	}
}
