package tui

import (
	"profilemgr/config"
	"profilemgr/config/models"
)

// ProfilesLoadedMsg is sent when the store has been (re)loaded
type ProfilesLoadedMsg struct {
	Profiles []models.Profile
	Active   string
	Err      error
}

// SwitchedMsg is sent when a profile switch completes
type SwitchedMsg struct {
	Name string
	Err  error
}

// AddedMsg is sent when a profile has been added
type AddedMsg struct {
	Profile   models.Profile
	Activated bool
	Err       error
}

// RemovedMsg is sent when a profile has been removed
type RemovedMsg struct {
	Name    string
	Outcome config.RemoveOutcome
	Err     error
}

// ClearedMsg is sent when the managed environment has been cleared
type ClearedMsg struct {
	Err error
}
