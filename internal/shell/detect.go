package shell

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"profilemgr/config/models"
	"profilemgr/internal/providers"
)

var (
	litellmKeyRe = regexp.MustCompile(`export\s+LITELLM_PROXY_API_KEY=["']?([^"'\s#]+)`)
	litellmURLRe = regexp.MustCompile(`export\s+LITELLM_PROXY_URL=["']?([^"'\s#]+)`)
	anthropicRe  = regexp.MustCompile(`export\s+ANTHROPIC_API_KEY=["']?([^"'\s#]+)`)
	openaiKeyRe  = regexp.MustCompile(`export\s+OPENAI_API_KEY=["']?([^"'\s#]+)`)
	openaiURLRe  = regexp.MustCompile(`export\s+OPENAI_BASE_URL=["']?([^"'\s#]+)`)
)

// DefaultRCCandidates returns the rc files scanned for existing keys.
func DefaultRCCandidates() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
	}
}

// DetectProfiles scans the given rc files for exported LLM API keys
// and returns importable profiles. Recognized patterns: a LiteLLM
// proxy key/URL pair, a direct Anthropic key, and an OpenAI key.
// Exports whose value references another variable are skipped.
func DetectProfiles(rcPaths ...string) []models.Profile {
	var content strings.Builder
	sourceName := "shell rc"
	for _, rcPath := range rcPaths {
		data, err := os.ReadFile(rcPath)
		if err != nil {
			continue
		}
		content.Write(data)
		content.WriteByte('\n')
		sourceName = filepath.Base(rcPath)
	}
	if content.Len() == 0 {
		return nil
	}
	text := content.String()

	var profiles []models.Profile

	if key, url := firstMatch(litellmKeyRe, text), firstMatch(litellmURLRe, text); key != "" && url != "" {
		profiles = append(profiles, models.Profile{
			Name:        "litellm-proxy",
			Description: "LiteLLM Proxy (imported from " + sourceName + ")",
			Type:        models.TypeAPI,
			APIKey:      key,
			BaseURL:     url,
		})
	}

	if key := firstMatch(anthropicRe, text); key != "" && !strings.HasPrefix(key, "$") {
		anthropic, _ := providers.Get("anthropic")
		profiles = append(profiles, models.Profile{
			Name:        "anthropic-direct",
			Description: "Anthropic Direct (imported from " + sourceName + ")",
			Type:        models.TypeAPI,
			APIKey:      key,
			BaseURL:     anthropic.DefaultBaseURL(),
		})
	}

	if key := firstMatch(openaiKeyRe, text); key != "" && !strings.HasPrefix(key, "$") {
		openai, _ := providers.Get("openai")
		baseURL := firstMatch(openaiURLRe, text)
		if baseURL == "" {
			baseURL = openai.DefaultBaseURL()
		}
		profiles = append(profiles, models.Profile{
			Name:        "openai-direct",
			Description: "OpenAI Direct (imported from " + sourceName + ")",
			Type:        models.TypeAPI,
			APIKey:      key,
			BaseURL:     baseURL,
		})
	}

	return profiles
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
