package sync

import (
	"fmt"
	"strings"

	"profilemgr/config/models"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Managed settings.json keys. Everything else in the document belongs
// to Claude Code and must survive the update untouched.
const (
	keyAPIKeyHelper = "apiKeyHelper"
	keyModel        = "model"
	keyEnvBaseURL   = "env.ANTHROPIC_BASE_URL"
	keyEnv          = "env"
)

// UpdateSettings applies the settings patch for the given profile to
// the raw settings.json content and returns the updated document.
// A nil profile removes every managed key. Empty content is treated as
// an empty document.
//
// API profiles get an apiKeyHelper that echoes the key (or a dummy
// token when the profile is no-auth but has a base_url), plus
// env.ANTHROPIC_BASE_URL. OAuth profiles get both removed so Claude
// Code falls back to its native OAuth session. The model override is
// set or removed for both types.
func UpdateSettings(content string, p *models.Profile) (string, error) {
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}
	if !gjson.Valid(content) {
		return "", fmt.Errorf("settings file is not valid JSON")
	}

	var err error
	if p == nil {
		if content, err = sjson.Delete(content, keyAPIKeyHelper); err != nil {
			return "", err
		}
		if content, err = sjson.Delete(content, keyModel); err != nil {
			return "", err
		}
		return setEnvBaseURL(content, "")
	}

	if p.IsOAuth() {
		if content, err = sjson.Delete(content, keyAPIKeyHelper); err != nil {
			return "", err
		}
		if content, err = setEnvBaseURL(content, ""); err != nil {
			return "", err
		}
	} else {
		helper := ""
		switch {
		case p.APIKey != "":
			helper = "echo " + p.APIKey
		case p.BaseURL != "":
			// No key but a base_url (e.g. Ollama): a dummy token keeps
			// Claude Code from falling back to the login prompt.
			helper = "echo " + placeholderAPIKey
		}
		if helper != "" {
			if content, err = sjson.Set(content, keyAPIKeyHelper, helper); err != nil {
				return "", err
			}
		} else {
			if content, err = sjson.Delete(content, keyAPIKeyHelper); err != nil {
				return "", err
			}
		}
		if content, err = setEnvBaseURL(content, p.BaseURL); err != nil {
			return "", err
		}
	}

	if p.Model != "" {
		return sjson.Set(content, keyModel, p.Model)
	}
	return sjson.Delete(content, keyModel)
}

// setEnvBaseURL sets or removes env.ANTHROPIC_BASE_URL, dropping the
// env object entirely when the removal leaves it empty.
func setEnvBaseURL(content, baseURL string) (string, error) {
	if baseURL != "" {
		return sjson.Set(content, keyEnvBaseURL, baseURL)
	}

	content, err := sjson.Delete(content, keyEnvBaseURL)
	if err != nil {
		return "", err
	}
	env := gjson.Get(content, keyEnv)
	if env.Exists() && env.IsObject() && len(env.Map()) == 0 {
		return sjson.Delete(content, keyEnv)
	}
	return content, nil
}
