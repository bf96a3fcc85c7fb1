package config

import "errors"

// Operation failures callers are expected to branch on. Each is
// reported before any mutation: a failed operation never persists
// partial state.
var (
	// ErrNotFound means no profile matches the requested name.
	ErrNotFound = errors.New("profile not found")

	// ErrDuplicateName means an add collided with an existing name.
	ErrDuplicateName = errors.New("profile already exists")

	// ErrCorruptStore means the profiles store exists but can't be
	// parsed. It is propagated rather than silently reset, since a
	// reset would destroy the user's stored credentials.
	ErrCorruptStore = errors.New("profiles store is corrupt")

	// ErrNoOAuthAccount means the host config has no OAuth session to
	// import from.
	ErrNoOAuthAccount = errors.New("no OAuth account found in host config")
)
