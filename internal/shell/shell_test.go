package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".bashrc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rc file: %v", err)
	}
	return path
}

func TestDetectProfilesLiteLLM(t *testing.T) {
	rc := writeRC(t, `
# llm proxy setup
export LITELLM_PROXY_API_KEY="sk-litellm-123"
export LITELLM_PROXY_URL="http://localhost:4000"
`)

	profiles := DetectProfiles(rc)
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "litellm-proxy" {
		t.Errorf("Expected name 'litellm-proxy', got '%s'", p.Name)
	}
	if p.APIKey != "sk-litellm-123" || p.BaseURL != "http://localhost:4000" {
		t.Errorf("Unexpected credentials: %+v", p)
	}
	if !strings.Contains(p.Description, ".bashrc") {
		t.Errorf("Description should name the source file, got '%s'", p.Description)
	}
}

func TestDetectProfilesLiteLLMRequiresPair(t *testing.T) {
	rc := writeRC(t, `export LITELLM_PROXY_API_KEY="sk-litellm-123"`)
	for _, p := range DetectProfiles(rc) {
		if p.Name == "litellm-proxy" {
			t.Error("A key without a URL must not produce a litellm profile")
		}
	}
}

func TestDetectProfilesAnthropic(t *testing.T) {
	rc := writeRC(t, `export ANTHROPIC_API_KEY=sk-ant-12345`)

	profiles := DetectProfiles(rc)
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "anthropic-direct" {
		t.Errorf("Expected name 'anthropic-direct', got '%s'", p.Name)
	}
	if p.APIKey != "sk-ant-12345" {
		t.Errorf("Unexpected key: %s", p.APIKey)
	}
	if p.BaseURL != "https://api.anthropic.com" {
		t.Errorf("Expected the provider default base URL, got '%s'", p.BaseURL)
	}
}

func TestDetectProfilesSkipsVariableReferences(t *testing.T) {
	rc := writeRC(t, `export ANTHROPIC_API_KEY=$MY_SECRET`)
	if got := DetectProfiles(rc); len(got) != 0 {
		t.Errorf("Variable references must be skipped, got %+v", got)
	}
}

func TestDetectProfilesOpenAI(t *testing.T) {
	rc := writeRC(t, `
export OPENAI_API_KEY='sk-openai-123'
export OPENAI_BASE_URL='https://openrouter.ai/api/v1'
`)

	profiles := DetectProfiles(rc)
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "openai-direct" {
		t.Errorf("Expected name 'openai-direct', got '%s'", p.Name)
	}
	if p.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Explicit base URL should win over the default, got '%s'", p.BaseURL)
	}
}

func TestDetectProfilesOpenAIDefaultBaseURL(t *testing.T) {
	rc := writeRC(t, `export OPENAI_API_KEY="sk-openai-123"`)

	profiles := DetectProfiles(rc)
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].BaseURL != "https://api.openai.com/v1" {
		t.Errorf("Expected the provider default base URL, got '%s'", profiles[0].BaseURL)
	}
}

func TestDetectProfilesMultiple(t *testing.T) {
	rc := writeRC(t, `
export LITELLM_PROXY_API_KEY="sk-litellm"
export LITELLM_PROXY_URL="http://localhost:4000"
export ANTHROPIC_API_KEY="sk-ant-123"
`)

	profiles := DetectProfiles(rc)
	if len(profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "litellm-proxy" || profiles[1].Name != "anthropic-direct" {
		t.Errorf("Unexpected profile order: %s, %s", profiles[0].Name, profiles[1].Name)
	}
}

func TestDetectProfilesMissingFiles(t *testing.T) {
	if got := DetectProfiles(filepath.Join(t.TempDir(), "nope")); got != nil {
		t.Errorf("Expected nil for missing rc files, got %+v", got)
	}
}

func TestInstall(t *testing.T) {
	rc := writeRC(t, "# existing content\n")
	installer := NewInstaller("/home/user/.config/profilemgr/active_env")

	installed, err := installer.Install(rc)
	if err != nil {
		t.Fatalf("Failed to install: %v", err)
	}
	if !installed {
		t.Error("Expected first install to modify the file")
	}

	content, _ := os.ReadFile(rc)
	if !strings.Contains(string(content), "# existing content") {
		t.Error("Existing rc content must be preserved")
	}
	if !strings.Contains(string(content), FunctionMarker) {
		t.Error("Expected the marker in the rc file")
	}
	if !strings.Contains(string(content), `source "$env_file"`) {
		t.Errorf("Expected the wrapper function body, got:\n%s", content)
	}
	if !strings.Contains(string(content), "/home/user/.config/profilemgr/active_env") {
		t.Error("Expected the env script path substituted into the wrapper")
	}
}

func TestInstallIdempotent(t *testing.T) {
	rc := writeRC(t, "")
	installer := NewInstaller("/tmp/active_env")

	if _, err := installer.Install(rc); err != nil {
		t.Fatalf("Failed to install: %v", err)
	}
	first, _ := os.ReadFile(rc)

	installed, err := installer.Install(rc)
	if err != nil {
		t.Fatalf("Second install failed: %v", err)
	}
	if installed {
		t.Error("Second install should be a no-op")
	}
	second, _ := os.ReadFile(rc)
	if string(first) != string(second) {
		t.Error("Second install must not change the file")
	}
}

func TestInstallMissingRC(t *testing.T) {
	installer := NewInstaller("/tmp/active_env")
	installed, err := installer.Install(filepath.Join(t.TempDir(), ".bashrc"))
	if err != nil {
		t.Fatalf("Missing rc file should be skipped, got: %v", err)
	}
	if installed {
		t.Error("Missing rc file must not be created")
	}
}
