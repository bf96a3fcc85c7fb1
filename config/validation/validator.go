// Package validation checks profiles at the add/import boundary before
// they enter the store.
package validation

import (
	"fmt"
	"strings"

	"profilemgr/config/models"
	"profilemgr/internal/utils"
)

// Validator validates profile records.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProfile validates a profile record. Name uniqueness is the
// lifecycle controller's concern, not checked here.
func (v *Validator) ValidateProfile(p models.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	switch p.Kind() {
	case models.TypeAPI:
		// An empty api_key is allowed (no-auth backends like Ollama).
		if p.BaseURL != "" && !utils.ValidateURL(p.BaseURL) {
			return fmt.Errorf("invalid base URL: %s", p.BaseURL)
		}
	case models.TypeOAuth:
		if p.EmailAddress == "" {
			return fmt.Errorf("oauth profile requires an email address")
		}
	default:
		return fmt.Errorf("unknown profile type: %s", p.Type)
	}

	return nil
}
