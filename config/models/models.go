package models

import "encoding/json"

// Profile type discriminants. An empty Type is read as TypeAPI for
// stores written before the field existed.
const (
	TypeAPI   = "api"
	TypeOAuth = "oauth"
)

// Profile represents a single named credential profile.
//
// API profiles carry an api_key/base_url pair (both optional; an empty
// api_key means a no-auth backend such as Ollama). OAuth profiles carry
// the account metadata plus two opaque payloads owned by Claude Code:
// the token bundle from ~/.claude/.credentials.json and the
// oauthAccount object from ~/.claude.json. Both are kept as raw JSON so
// they round-trip byte-for-byte through the store.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`

	// API profile fields
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`

	// OAuth profile fields
	AccountUUID      string          `json:"accountUuid,omitempty"`
	OrganizationUUID string          `json:"organizationUuid,omitempty"`
	EmailAddress     string          `json:"emailAddress,omitempty"`
	DisplayName      string          `json:"displayName,omitempty"`
	OrganizationName string          `json:"organizationName,omitempty"`
	OrganizationRole string          `json:"organizationRole,omitempty"`
	Credentials      json.RawMessage `json:"credentials,omitempty"`
	OAuthAccount     json.RawMessage `json:"oauthAccount,omitempty"`

	// Optional model override, applies to both types
	Model string `json:"model,omitempty"`
}

// Kind returns the profile type, defaulting to TypeAPI when unset.
func (p *Profile) Kind() string {
	if p.Type == "" {
		return TypeAPI
	}
	return p.Type
}

// IsOAuth reports whether the profile uses Claude Code's native OAuth.
func (p *Profile) IsOAuth() bool {
	return p.Kind() == TypeOAuth
}

// Store represents the profiles store document. Active holds the name
// of the active profile, or the empty string when none is active
// (a JSON null on disk reads as empty).
type Store struct {
	Active   string    `json:"active"`
	Profiles []Profile `json:"profiles"`
}

// NewStore returns an empty store with no active profile.
func NewStore() *Store {
	return &Store{Profiles: []Profile{}}
}

// Find returns a pointer to the profile with the given name, or nil.
// The pointer aliases the store's slice so callers can update the
// stored record in place.
func (s *Store) Find(name string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			return &s.Profiles[i]
		}
	}
	return nil
}

// Index returns the position of the named profile, or -1.
func (s *Store) Index(name string) int {
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			return i
		}
	}
	return -1
}

// ActiveProfile returns the active profile record, or nil when no
// profile is active or the active name no longer resolves.
func (s *Store) ActiveProfile() *Profile {
	if s.Active == "" {
		return nil
	}
	return s.Find(s.Active)
}
