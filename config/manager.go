// Package config implements the profiles store and the profile
// lifecycle: add, remove, switch, and clear, each reloading the store
// fresh, persisting it exactly once at its conclusion, and projecting
// the resulting active profile onto the derived state surfaces.
//
// Two simultaneous invocations can still race on the store file
// (last writer wins). The advisory flock narrows the window but this
// tool makes no stronger guarantee.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"profilemgr/config/models"
	"profilemgr/config/oauth"
	"profilemgr/config/storage"
	syncpkg "profilemgr/config/sync"
	"profilemgr/config/validation"
)

// Manager is the profile lifecycle controller.
type Manager struct {
	paths Paths
	oauth *oauth.Store
	mu    sync.Mutex
}

// NewManager creates a Manager rooted at the default paths and ensures
// the config directory exists.
func NewManager() (*Manager, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return NewManagerWithPaths(paths), nil
}

// NewManagerWithPaths creates a Manager over explicit file locations.
func NewManagerWithPaths(paths Paths) *Manager {
	return &Manager{
		paths: paths,
		oauth: &oauth.Store{
			HostConfigPath:  paths.HostConfigPath,
			CredentialsPath: paths.CredentialsPath,
		},
	}
}

// Paths returns the file locations this manager operates on.
func (m *Manager) Paths() Paths {
	return m.paths
}

// loadStore loads the profiles store under a shared lock. A missing or
// empty file yields an empty default; an unparseable file is
// ErrCorruptStore.
func (m *Manager) loadStore() (*models.Store, error) {
	file, err := os.OpenFile(m.paths.ProfilesPath, os.O_RDONLY, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewStore(), nil
		}
		return nil, fmt.Errorf("failed to open profiles store: %w", err)
	}
	defer file.Close()

	if err := lockFileShared(file); err != nil {
		return nil, fmt.Errorf("failed to lock profiles store: %w", err)
	}
	defer unlockFile(file)

	data, err := os.ReadFile(m.paths.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles store: %w", err)
	}
	if len(data) == 0 {
		return models.NewStore(), nil
	}

	var store models.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if store.Profiles == nil {
		store.Profiles = []models.Profile{}
	}
	return &store, nil
}

// saveStore persists the store under an exclusive lock with stable
// two-space formatting.
func (m *Manager) saveStore(store *models.Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profiles store: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(m.paths.ProfilesPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(m.paths.ProfilesPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open profiles store: %w", err)
	}
	defer file.Close()

	if err := lockFileExclusive(file); err != nil {
		return fmt.Errorf("failed to lock profiles store: %w", err)
	}
	defer unlockFile(file)

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write profiles store: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync profiles store: %w", err)
	}
	return nil
}

// List returns all profiles and the active profile name.
func (m *Manager) List() ([]models.Profile, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return nil, "", err
	}
	return store.Profiles, store.Active, nil
}

// Get returns a copy of the named profile.
func (m *Manager) Get(name string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return nil, err
	}
	p := store.Find(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	profile := *p
	return &profile, nil
}

// GetActive returns a copy of the active profile, or nil when no
// profile is active or its record is gone.
func (m *Manager) GetActive() (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return nil, err
	}
	p := store.ActiveProfile()
	if p == nil {
		return nil, nil
	}
	profile := *p
	return &profile, nil
}

// HasProfiles reports whether any profile has been stored yet.
func (m *Manager) HasProfiles() (bool, error) {
	profiles, _, err := m.List()
	if err != nil {
		return false, err
	}
	return len(profiles) > 0, nil
}

// Switch activates the named profile. The current active profile's
// OAuth state is captured first so refreshed tokens are not lost.
// Switching to the already-active profile is not a no-op: capture and
// projection re-run, refreshing state from possibly-changed host files.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return err
	}
	profile := store.Find(name)
	if profile == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	m.oauth.CaptureBeforeSwitch(store)
	store.Active = name
	if err := m.saveStore(store); err != nil {
		return err
	}
	return m.project(profile)
}

// Add appends a new profile to the store. The first profile ever added
// becomes active immediately; the returned bool reports that.
func (m *Manager) Add(profile models.Profile) (bool, error) {
	if err := validation.NewValidator().ValidateProfile(profile); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return false, err
	}
	if store.Find(profile.Name) != nil {
		return false, fmt.Errorf("%w: %s", ErrDuplicateName, profile.Name)
	}

	store.Profiles = append(store.Profiles, profile)
	activated := false
	if len(store.Profiles) == 1 {
		store.Active = profile.Name
		activated = true
	}

	if err := m.saveStore(store); err != nil {
		return false, err
	}
	if activated {
		return true, m.project(&store.Profiles[0])
	}
	return false, nil
}

// RemoveOutcome describes what Remove did to the active profile.
type RemoveOutcome struct {
	// WasActive reports whether the removed profile was active.
	WasActive bool
	// NewActive is the profile activated in its place, empty when none
	// remained.
	NewActive string
}

// Remove deletes the named profile (or the 1-based index rendered as a
// name by the caller). Removing the active profile activates the first
// remaining one; removing the last profile deletes the env script
// outright, distinguishing "no managed environment" from "env unset".
func (m *Manager) Remove(name string) (RemoveOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var outcome RemoveOutcome

	store, err := m.loadStore()
	if err != nil {
		return outcome, err
	}
	idx := store.Index(name)
	if idx < 0 {
		return outcome, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	wasActive := store.Active == name
	store.Profiles = append(store.Profiles[:idx], store.Profiles[idx+1:]...)

	if wasActive {
		outcome.WasActive = true
		if len(store.Profiles) > 0 {
			store.Active = store.Profiles[0].Name
			outcome.NewActive = store.Active
		} else {
			store.Active = ""
		}
	}

	if err := m.saveStore(store); err != nil {
		return outcome, err
	}

	if wasActive {
		if len(store.Profiles) > 0 {
			return outcome, m.project(&store.Profiles[0])
		}
		if err := os.Remove(m.paths.EnvScriptPath); err != nil && !os.IsNotExist(err) {
			return outcome, fmt.Errorf("failed to remove env script: %w", err)
		}
	}
	return outcome, nil
}

// Clear unconditionally projects the empty state: every managed env
// var unset, managed settings keys removed, OAuth state deleted, and
// no active profile.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, err := m.loadStore()
	if err != nil {
		return err
	}

	if err := m.writeEnvScript(nil); err != nil {
		return err
	}
	if err := m.oauth.RemoveCredentials(); err != nil {
		return err
	}
	if err := m.oauth.ClearAccount(); err != nil {
		return err
	}
	if err := m.applySettings(nil); err != nil {
		return err
	}

	store.Active = ""
	return m.saveStore(store)
}

// ImportOAuth builds a profile from the live Claude Code OAuth session
// and adds it to the store. Returns the profile and whether it became
// active (first profile ever).
func (m *Manager) ImportOAuth(name, description, model string) (*models.Profile, bool, error) {
	info := m.oauth.Extract()
	if info == nil {
		return nil, false, ErrNoOAuthAccount
	}
	profile := info.Profile(name, description, model)
	activated, err := m.Add(profile)
	if err != nil {
		return nil, false, err
	}
	return &profile, activated, nil
}

// ImportProfiles replaces an empty store with the detected profiles
// and activates the first one. Used by the first-run rc import.
func (m *Manager) ImportProfiles(profiles []models.Profile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles to import")
	}
	validator := validation.NewValidator()
	for _, p := range profiles {
		if err := validator.ValidateProfile(p); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	store := models.NewStore()
	store.Profiles = append(store.Profiles, profiles...)
	store.Active = profiles[0].Name
	if err := m.saveStore(store); err != nil {
		return err
	}
	return m.project(&store.Profiles[0])
}

// ExtractOAuthInfo exposes the live host OAuth session, nil when none.
func (m *Manager) ExtractOAuthInfo() *oauth.Info {
	return m.oauth.Extract()
}

// project pushes one profile onto the env script, the OAuth state
// files, and Claude Code's settings.
func (m *Manager) project(profile *models.Profile) error {
	if err := m.writeEnvScript(profile); err != nil {
		return err
	}
	if err := m.oauth.Activate(profile); err != nil {
		return err
	}
	return m.applySettings(profile)
}

// writeEnvScript renders and fully overwrites the sourceable script.
func (m *Manager) writeEnvScript(profile *models.Profile) error {
	script := syncpkg.GenerateEnvScript(profile)
	if err := os.MkdirAll(filepath.Dir(m.paths.EnvScriptPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.paths.EnvScriptPath, []byte(script), 0600); err != nil {
		return fmt.Errorf("failed to write env script: %w", err)
	}
	return nil
}

// applySettings patches the managed keys into Claude Code's settings
// document, preserving everything else it contains.
func (m *Manager) applySettings(profile *models.Profile) error {
	content := ""
	exists := storage.FileExists(m.paths.SettingsPath)
	if exists {
		data, err := os.ReadFile(m.paths.SettingsPath)
		if err != nil {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
		content = string(data)
	}

	updated, err := syncpkg.UpdateSettings(content, profile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.paths.SettingsPath), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	// Backups only make sense once there is a document to preserve.
	return storage.AtomicFileUpdate(m.paths.SettingsPath, updated, exists)
}
