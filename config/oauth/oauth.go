// Package oauth captures and restores Claude Code's OAuth session
// state: the token bundle in ~/.claude/.credentials.json and the
// oauthAccount object in ~/.claude.json. Both files are owned by
// Claude Code; absence or malformed content is never fatal here.
package oauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"profilemgr/config/models"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Info holds the OAuth account metadata extracted from the host
// config, plus the opaque payloads needed to restore the session.
type Info struct {
	AccountUUID          string
	OrganizationUUID     string
	EmailAddress         string
	DisplayName          string
	OrganizationName     string
	OrganizationRole     string
	HasExtraUsageEnabled bool
	OAuthAccount         json.RawMessage
	Credentials          json.RawMessage
}

// Profile builds an OAuth profile record from the extracted info.
func (i *Info) Profile(name, description, model string) models.Profile {
	if description == "" {
		description = "Claude Pro - " + i.EmailAddress
	}
	return models.Profile{
		Name:             name,
		Description:      description,
		Type:             models.TypeOAuth,
		AccountUUID:      i.AccountUUID,
		OrganizationUUID: i.OrganizationUUID,
		EmailAddress:     i.EmailAddress,
		DisplayName:      i.DisplayName,
		OrganizationName: i.OrganizationName,
		OrganizationRole: i.OrganizationRole,
		Credentials:      i.Credentials,
		OAuthAccount:     i.OAuthAccount,
		Model:            model,
	}
}

// Store reads and writes the host tool's OAuth state files.
type Store struct {
	// HostConfigPath is Claude Code's own config document (~/.claude.json).
	HostConfigPath string
	// CredentialsPath is the OAuth token bundle (~/.claude/.credentials.json).
	CredentialsPath string
}

// LoadCredentials returns the raw credential bundle, or nil when the
// file is absent or not valid JSON.
func (s *Store) LoadCredentials() json.RawMessage {
	data, err := os.ReadFile(s.CredentialsPath)
	if err != nil {
		return nil
	}
	if !json.Valid(data) {
		return nil
	}
	return json.RawMessage(bytes.TrimSpace(data))
}

// SaveCredentials writes the credential bundle with owner-only
// permissions. The chmod error propagates: the tokens must not stay
// world-readable.
func (s *Store) SaveCredentials(credentials json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.CredentialsPath), 0755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, credentials, "", "  "); err != nil {
		return fmt.Errorf("invalid credential bundle: %w", err)
	}
	out.WriteByte('\n')

	if err := os.WriteFile(s.CredentialsPath, out.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	if err := os.Chmod(s.CredentialsPath, 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}
	return nil
}

// RemoveCredentials deletes the credentials file. A missing file is
// not an error.
func (s *Store) RemoveCredentials() error {
	if err := os.Remove(s.CredentialsPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// Extract reads the host config and returns the OAuth account info
// plus, when present, the credential bundle. Returns nil when the host
// config is absent, malformed, or has no oauthAccount section.
func (s *Store) Extract() *Info {
	data, err := os.ReadFile(s.HostConfigPath)
	if err != nil {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return nil
	}

	account := gjson.GetBytes(data, "oauthAccount")
	if !account.Exists() || !account.IsObject() {
		return nil
	}

	info := &Info{
		AccountUUID:          account.Get("accountUuid").String(),
		OrganizationUUID:     account.Get("organizationUuid").String(),
		EmailAddress:         account.Get("emailAddress").String(),
		DisplayName:          account.Get("displayName").String(),
		OrganizationName:     account.Get("organizationName").String(),
		OrganizationRole:     account.Get("organizationRole").String(),
		HasExtraUsageEnabled: account.Get("hasExtraUsageEnabled").Bool(),
		OAuthAccount:         json.RawMessage(account.Raw),
	}
	info.Credentials = s.LoadCredentials()
	return info
}

// WriteAccount sets the oauthAccount field in the host config and
// removes apiKeyHelper so Claude Code uses OAuth instead of a key.
// A missing or malformed host config is silently skipped: the file
// belongs to another program and may legitimately not exist yet.
func (s *Store) WriteAccount(account json.RawMessage) error {
	return s.updateHostConfig(func(content string) (string, error) {
		updated, err := sjson.SetRaw(content, "oauthAccount", string(account))
		if err != nil {
			return "", err
		}
		return sjson.Delete(updated, "apiKeyHelper")
	})
}

// ClearAccount removes the oauthAccount field from the host config.
func (s *Store) ClearAccount() error {
	return s.updateHostConfig(func(content string) (string, error) {
		return sjson.Delete(content, "oauthAccount")
	})
}

// updateHostConfig performs a read-modify-write on the host config.
// Absent or invalid files make the update a no-op.
func (s *Store) updateHostConfig(update func(string) (string, error)) error {
	data, err := os.ReadFile(s.HostConfigPath)
	if err != nil {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return nil
	}

	updated, err := update(string(data))
	if err != nil {
		return nil
	}
	if err := os.WriteFile(s.HostConfigPath, []byte(updated), 0600); err != nil {
		return fmt.Errorf("failed to write host config: %w", err)
	}
	return nil
}

// CaptureBeforeSwitch re-syncs the active OAuth profile's stored
// credentials from the live host files. Claude Code refreshes tokens
// in place, so the stored record must be updated immediately before
// the profile goes inactive or the next activation would restore
// stale tokens. Mutates the store in memory; callers persist it.
func (s *Store) CaptureBeforeSwitch(st *models.Store) {
	active := st.ActiveProfile()
	if active == nil || !active.IsOAuth() {
		return
	}
	if credentials := s.LoadCredentials(); credentials != nil {
		active.Credentials = credentials
	}
	if info := s.Extract(); info != nil && len(info.OAuthAccount) > 0 {
		active.OAuthAccount = info.OAuthAccount
	}
}

// Activate pushes a profile's OAuth state onto the host files. OAuth
// profiles restore their stored bundle and account; every other type
// deletes the credentials file and clears the host account field.
func (s *Store) Activate(p *models.Profile) error {
	if p.IsOAuth() {
		if len(p.Credentials) > 0 {
			if err := s.SaveCredentials(p.Credentials); err != nil {
				return err
			}
		}
		if len(p.OAuthAccount) > 0 {
			if err := s.WriteAccount(p.OAuthAccount); err != nil {
				return err
			}
		}
		return nil
	}

	if err := s.RemoveCredentials(); err != nil {
		return err
	}
	return s.ClearAccount()
}
