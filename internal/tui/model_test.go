package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"profilemgr/config"
	"profilemgr/config/models"
)

// setupTestModel creates a model over a manager with two stored
// profiles, with the store already loaded into the model.
func setupTestModel(t *testing.T) (Model, *config.Manager) {
	t.Helper()
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "profilemgr")
	manager := config.NewManagerWithPaths(config.Paths{
		ConfigDir:       configDir,
		ProfilesPath:    filepath.Join(configDir, "profiles.json"),
		EnvScriptPath:   filepath.Join(configDir, "active_env"),
		SettingsPath:    filepath.Join(tempDir, ".claude", "settings.json"),
		HostConfigPath:  filepath.Join(tempDir, ".claude.json"),
		CredentialsPath: filepath.Join(tempDir, ".claude", ".credentials.json"),
	})

	for _, name := range []string{"first", "second"} {
		_, err := manager.Add(models.Profile{
			Name:        name,
			Description: name,
			Type:        models.TypeAPI,
			APIKey:      "sk-" + name,
			BaseURL:     "https://api.example.com",
		})
		if err != nil {
			t.Fatalf("Failed to add profile: %v", err)
		}
	}

	m := NewModel(manager)
	msg := m.Init()()
	loaded, ok := msg.(ProfilesLoadedMsg)
	if !ok {
		t.Fatalf("Expected ProfilesLoadedMsg from Init, got %T", msg)
	}
	updated, _ := m.Update(loaded)
	return updated.(Model), manager
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelLoadsProfiles(t *testing.T) {
	m, _ := setupTestModel(t)
	if len(m.profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(m.profiles))
	}
	if m.active != "first" {
		t.Errorf("Expected active 'first', got '%s'", m.active)
	}
}

func TestModelNavigation(t *testing.T) {
	m, _ := setupTestModel(t)

	updated, _ := m.Update(keyRune('j'))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("Expected cursor 1 after down, got %d", m.cursor)
	}

	// Already at the bottom, stays put
	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("Cursor must not move past the last profile, got %d", m.cursor)
	}

	updated, _ = m.Update(keyRune('k'))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("Expected cursor 0 after up, got %d", m.cursor)
	}
	updated, _ = m.Update(keyRune('k'))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("Cursor must not move above the first profile, got %d", m.cursor)
	}
}

func TestModelSelectSwitches(t *testing.T) {
	m, manager := setupTestModel(t)

	updated, _ := m.Update(keyRune('j'))
	m = updated.(Model)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a switch command")
	}

	msg := cmd()
	switched, ok := msg.(SwitchedMsg)
	if !ok {
		t.Fatalf("Expected SwitchedMsg, got %T", msg)
	}
	if switched.Err != nil {
		t.Fatalf("Switch failed: %v", switched.Err)
	}
	if switched.Name != "second" {
		t.Errorf("Expected switch to 'second', got '%s'", switched.Name)
	}

	_, active, err := manager.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if active != "second" {
		t.Errorf("Expected store active 'second', got '%s'", active)
	}

	// The switch result quits so the shell wrapper can source the env
	updated, cmd = m.Update(switched)
	m = updated.(Model)
	if m.message == "" {
		t.Error("Expected a closing message")
	}
	if cmd == nil {
		t.Fatal("Expected quit command after switch")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.Quit after a completed switch")
	}
}

func TestModelRemoveFlow(t *testing.T) {
	m, manager := setupTestModel(t)

	updated, _ := m.Update(keyRune('r'))
	m = updated.(Model)
	if m.viewState != ViewRemove {
		t.Fatalf("Expected remove confirmation view, got %v", m.viewState)
	}

	// Declining goes back to the list
	updated, _ = m.Update(keyRune('n'))
	m = updated.(Model)
	if m.viewState != ViewMain {
		t.Errorf("Expected main view after decline, got %v", m.viewState)
	}

	// Remove the non-active second profile
	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	updated, _ = m.Update(keyRune('r'))
	m = updated.(Model)
	_, cmd := m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("Expected a remove command")
	}

	msg := cmd()
	removed, ok := msg.(RemovedMsg)
	if !ok {
		t.Fatalf("Expected RemovedMsg, got %T", msg)
	}
	if removed.Err != nil {
		t.Fatalf("Remove failed: %v", removed.Err)
	}
	if removed.Outcome.WasActive {
		t.Error("Removed profile was not the active one")
	}

	profiles, _, err := manager.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("Expected 1 profile left, got %d", len(profiles))
	}

	// Non-active removal stays in the menu and reloads
	updated, cmd = m.Update(removed)
	m = updated.(Model)
	if m.viewState != ViewMain {
		t.Errorf("Expected main view after removal, got %v", m.viewState)
	}
	if cmd == nil {
		t.Error("Expected a reload command after removal")
	}
}

func TestModelClearFlow(t *testing.T) {
	m, manager := setupTestModel(t)

	updated, _ := m.Update(keyRune('c'))
	m = updated.(Model)
	if m.viewState != ViewClear {
		t.Fatalf("Expected clear confirmation view, got %v", m.viewState)
	}

	_, cmd := m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("Expected a clear command")
	}
	msg := cmd()
	cleared, ok := msg.(ClearedMsg)
	if !ok {
		t.Fatalf("Expected ClearedMsg, got %T", msg)
	}
	if cleared.Err != nil {
		t.Fatalf("Clear failed: %v", cleared.Err)
	}

	_, active, err := manager.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if active != "" {
		t.Errorf("Expected no active profile after clear, got '%s'", active)
	}

	updated, cmd = m.Update(cleared)
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("Expected quit command after clear")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.Quit after clear")
	}
}

func TestModelAddForm(t *testing.T) {
	m, manager := setupTestModel(t)

	updated, _ := m.Update(keyRune('a'))
	m = updated.(Model)
	if m.viewState != ViewAdd {
		t.Fatalf("Expected add form view, got %v", m.viewState)
	}

	// Esc cancels back to the list
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.viewState != ViewMain {
		t.Errorf("Expected main view after esc, got %v", m.viewState)
	}

	// Fill the form and submit from the last field
	updated, _ = m.Update(keyRune('a'))
	m = updated.(Model)
	m.formInputs[fieldName].SetValue("third")
	m.formInputs[fieldAPIKey].SetValue("sk-third")
	m.formInputs[fieldBaseURL].SetValue("https://third.example.com")
	m.formFocus = fieldModel

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a submit command")
	}
	msg := cmd()
	added, ok := msg.(AddedMsg)
	if !ok {
		t.Fatalf("Expected AddedMsg, got %T", msg)
	}
	if added.Err != nil {
		t.Fatalf("Add failed: %v", added.Err)
	}
	if added.Activated {
		t.Error("Third profile must not auto-activate")
	}

	p, err := manager.Get("third")
	if err != nil {
		t.Fatalf("Failed to get added profile: %v", err)
	}
	if p.Description != "third" {
		t.Errorf("Blank description should default to the name, got '%s'", p.Description)
	}
}

func TestModelAddDuplicateShowsError(t *testing.T) {
	m, _ := setupTestModel(t)

	updated, _ := m.Update(keyRune('a'))
	m = updated.(Model)
	m.formInputs[fieldName].SetValue("first")
	m.formFocus = fieldModel

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a submit command")
	}
	added := cmd().(AddedMsg)
	if added.Err == nil {
		t.Fatal("Expected duplicate name error")
	}

	updated, _ = m.Update(added)
	m = updated.(Model)
	if m.errorMsg == "" {
		t.Error("Expected the error surfaced in the menu")
	}
	if m.viewState != ViewMain {
		t.Errorf("Expected main view after failed add, got %v", m.viewState)
	}
}
