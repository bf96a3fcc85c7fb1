package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds every file location the manager touches. The profiles
// store and env script live in this tool's own config directory; the
// settings, host config, and credentials files are owned by Claude
// Code and are only patched, never replaced wholesale.
type Paths struct {
	// ConfigDir is this tool's directory (~/.config/profilemgr)
	ConfigDir string
	// ProfilesPath is the profiles store (profiles.json)
	ProfilesPath string
	// EnvScriptPath is the sourceable env script (active_env)
	EnvScriptPath string
	// SettingsPath is Claude Code's settings (~/.claude/settings.json)
	SettingsPath string
	// HostConfigPath is Claude Code's config (~/.claude.json)
	HostConfigPath string
	// CredentialsPath is the OAuth token bundle (~/.claude/.credentials.json)
	CredentialsPath string
}

// DefaultPaths resolves the standard locations, honoring
// XDG_CONFIG_HOME for this tool's own directory.
func DefaultPaths() (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get user home directory: %w", err)
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(xdgConfigHome, "profilemgr")
	return Paths{
		ConfigDir:       configDir,
		ProfilesPath:    filepath.Join(configDir, "profiles.json"),
		EnvScriptPath:   filepath.Join(configDir, "active_env"),
		SettingsPath:    filepath.Join(homeDir, ".claude", "settings.json"),
		HostConfigPath:  filepath.Join(homeDir, ".claude.json"),
		CredentialsPath: filepath.Join(homeDir, ".claude", ".credentials.json"),
	}, nil
}
