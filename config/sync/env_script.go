// Package sync projects a profile onto the two derived state surfaces:
// the sourceable environment script and Claude Code's settings.json.
package sync

import (
	"strings"

	"profilemgr/config/models"
	"profilemgr/internal/providers"
)

// placeholderAPIKey is exported in place of an empty api_key when the
// profile has a base_url, so downstream tools don't reject empty auth
// or fall back to an interactive login.
const placeholderAPIKey = "ollama"

// GenerateEnvScript renders the sourceable environment script for the
// given profile. A nil profile produces an unset line for every managed
// variable, provider and constant alike.
//
// For OAuth profiles every provider variable is unset: Claude Code
// manages OAuth natively and env credentials would shadow it. For API
// profiles ANTHROPIC_AUTH_TOKEN is always unset (only ANTHROPIC_API_KEY
// carries the key) and the remaining variables export the mapped field.
// The constant variables are appended after the provider variables
// regardless of profile type, so output order is fixed: declared
// variable order, then constant order.
func GenerateEnvScript(p *models.Profile) string {
	var b strings.Builder

	if p == nil {
		for _, v := range providers.Variables() {
			writeUnset(&b, v.Name)
		}
		for _, c := range providers.Constants() {
			writeUnset(&b, c.Name)
		}
		return b.String()
	}

	for _, v := range providers.Variables() {
		switch {
		case p.IsOAuth():
			writeUnset(&b, v.Name)
		case v.Name == "ANTHROPIC_AUTH_TOKEN":
			writeUnset(&b, v.Name)
		default:
			writeExport(&b, v.Name, variableValue(p, v))
		}
	}

	for _, c := range providers.Constants() {
		writeExport(&b, c.Name, c.Value)
	}

	return b.String()
}

// variableValue resolves the exported value for one provider variable.
func variableValue(p *models.Profile, v providers.Variable) string {
	var value string
	switch v.Source {
	case providers.SourceAPIKey:
		value = p.APIKey
	case providers.SourceBaseURL:
		value = p.BaseURL
	}
	if value == "" && v.Source == providers.SourceAPIKey && p.BaseURL != "" {
		value = placeholderAPIKey
	}
	return value
}

func writeExport(b *strings.Builder, name, value string) {
	b.WriteString("export ")
	b.WriteString(name)
	b.WriteString("=\"")
	b.WriteString(value)
	b.WriteString("\"\n")
}

func writeUnset(b *strings.Builder, name string) {
	b.WriteString("unset ")
	b.WriteString(name)
	b.WriteString("\n")
}
