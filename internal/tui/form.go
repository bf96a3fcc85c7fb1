package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"profilemgr/config/models"
)

// Add form field order. OAuth imports only use the first two plus the
// model override; the account data comes from the live host config.
const (
	fieldName = iota
	fieldDescription
	fieldAPIKey
	fieldBaseURL
	fieldModel
	fieldCount
)

// enterAddForm initializes the add form inputs
func (m *Model) enterAddForm(oauthImport bool) {
	m.formOAuth = oauthImport
	m.formFocus = 0

	labels := []struct {
		placeholder string
		echo        textinput.EchoMode
	}{
		{"profile name (e.g. claude-direct)", textinput.EchoNormal},
		{"description", textinput.EchoNormal},
		{"API key (blank for none, e.g. Ollama)", textinput.EchoPassword},
		{"base URL (e.g. https://api.anthropic.com)", textinput.EchoNormal},
		{"model override (blank for default)", textinput.EchoNormal},
	}

	m.formInputs = make([]textinput.Model, fieldCount)
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.EchoMode = l.echo
		ti.CharLimit = 256
		m.formInputs[i] = ti
	}
	if oauthImport {
		m.formInputs[fieldName].SetValue("claude-pro")
		m.formInputs[fieldDescription].SetValue("Claude Pro Subscription")
	}
	m.formInputs[0].Focus()
	m.viewState = ViewAdd
}

// formVisible reports whether the field applies to the current form
// variant.
func (m *Model) formVisible(field int) bool {
	if !m.formOAuth {
		return true
	}
	return field == fieldName || field == fieldDescription || field == fieldModel
}

func (m *Model) nextFormField(delta int) {
	for {
		m.formFocus = (m.formFocus + delta + fieldCount) % fieldCount
		if m.formVisible(m.formFocus) {
			break
		}
	}
	for i := range m.formInputs {
		if i == m.formFocus {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

// updateForm handles key presses in the add form
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewState = ViewMain
		m.formInputs = nil
		return m, nil

	case "tab", "down":
		m.nextFormField(1)
		return m, nil

	case "shift+tab", "up":
		m.nextFormField(-1)
		return m, nil

	case "enter":
		// Enter advances until the last visible field submits.
		if m.formFocus != lastVisibleField(&m) {
			m.nextFormField(1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func lastVisibleField(m *Model) int {
	last := 0
	for i := 0; i < fieldCount; i++ {
		if m.formVisible(i) {
			last = i
		}
	}
	return last
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.formInputs[fieldName].Value())
	description := strings.TrimSpace(m.formInputs[fieldDescription].Value())
	model := strings.TrimSpace(m.formInputs[fieldModel].Value())

	if m.formOAuth {
		manager := m.manager
		return m, func() tea.Msg {
			profile, activated, err := manager.ImportOAuth(name, description, model)
			if err != nil {
				return AddedMsg{Err: err}
			}
			return AddedMsg{Profile: *profile, Activated: activated}
		}
	}

	if description == "" {
		description = name
	}
	profile := models.Profile{
		Name:        name,
		Description: description,
		Type:        models.TypeAPI,
		APIKey:      strings.TrimSpace(m.formInputs[fieldAPIKey].Value()),
		BaseURL:     strings.TrimSpace(m.formInputs[fieldBaseURL].Value()),
		Model:       model,
	}
	manager := m.manager
	return m, func() tea.Msg {
		activated, err := manager.Add(profile)
		return AddedMsg{Profile: profile, Activated: activated, Err: err}
	}
}
