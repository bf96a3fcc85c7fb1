// Package providers declares the LLM backends whose environment
// variables this tool manages, and which profile field each variable
// sources its value from.
package providers

import "errors"

// Source identifies the profile field a managed variable is filled from.
type Source int

const (
	SourceAPIKey Source = iota
	SourceBaseURL
)

// Variable is a single managed environment variable declaration.
type Variable struct {
	Name   string
	Source Source
}

// Constant is an environment variable exported with a fixed value
// whenever any profile is active.
type Constant struct {
	Name  string
	Value string
}

// Provider defines the standard interface for LLM backends.
type Provider interface {
	// Name returns the provider's name (e.g., "anthropic", "openai")
	Name() string
	// DefaultBaseURL returns the default base URL for the provider
	DefaultBaseURL() string
	// Variables returns the environment variables the provider reads,
	// in declaration order
	Variables() []Variable
}

// registry stores all registered providers; order preserves
// registration order so the projected script is deterministic.
var (
	registry = make(map[string]Provider)
	order    []string
)

// Register registers a new provider.
func Register(name string, provider Provider) {
	if _, exists := registry[name]; !exists {
		order = append(order, name)
	}
	registry[name] = provider
}

// Get returns a provider by name.
func Get(name string) (Provider, error) {
	provider, ok := registry[name]
	if !ok {
		return nil, errors.New("unknown provider: " + name)
	}
	return provider, nil
}

// List returns all registered provider names in registration order.
func List() []string {
	result := make([]string, len(order))
	copy(result, order)
	return result
}

// Variables returns every managed variable across all providers, in
// registration order then per-provider declaration order.
func Variables() []Variable {
	var vars []Variable
	for _, name := range order {
		vars = append(vars, registry[name].Variables()...)
	}
	return vars
}

// Constants returns the fixed variable set appended after the provider
// variables in every projected script.
func Constants() []Constant {
	return []Constant{
		{Name: "OLLAMA_API_BASE", Value: "http://127.0.0.1:11434"},
	}
}

// LiteLLMProvider covers LiteLLM proxy deployments.
type LiteLLMProvider struct{}

func (p *LiteLLMProvider) Name() string           { return "litellm" }
func (p *LiteLLMProvider) DefaultBaseURL() string { return "" }
func (p *LiteLLMProvider) Variables() []Variable {
	return []Variable{
		{Name: "LITELLM_PROXY_API_KEY", Source: SourceAPIKey},
		{Name: "LITELLM_PROXY_URL", Source: SourceBaseURL},
	}
}

// GeminiProvider covers Google Gemini endpoints.
type GeminiProvider struct{}

func (p *GeminiProvider) Name() string           { return "gemini" }
func (p *GeminiProvider) DefaultBaseURL() string { return "" }
func (p *GeminiProvider) Variables() []Variable {
	return []Variable{
		{Name: "GEMINI_API_KEY", Source: SourceAPIKey},
		{Name: "GEMINI_BASE_URL", Source: SourceBaseURL},
	}
}

// OpenAIProvider covers OpenAI-compatible endpoints.
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string           { return "openai" }
func (p *OpenAIProvider) DefaultBaseURL() string { return "https://api.openai.com/v1" }
func (p *OpenAIProvider) Variables() []Variable {
	return []Variable{
		{Name: "OPENAI_API_KEY", Source: SourceAPIKey},
		{Name: "OPENAI_BASE_URL", Source: SourceBaseURL},
	}
}

// AnthropicProvider covers the Anthropic API and proxies for it.
// ANTHROPIC_AUTH_TOKEN is declared so the projector can manage (unset)
// it; API profiles only ever export ANTHROPIC_API_KEY.
type AnthropicProvider struct{}

func (p *AnthropicProvider) Name() string           { return "anthropic" }
func (p *AnthropicProvider) DefaultBaseURL() string { return "https://api.anthropic.com" }
func (p *AnthropicProvider) Variables() []Variable {
	return []Variable{
		{Name: "ANTHROPIC_AUTH_TOKEN", Source: SourceAPIKey},
		{Name: "ANTHROPIC_API_KEY", Source: SourceAPIKey},
		{Name: "ANTHROPIC_BASE_URL", Source: SourceBaseURL},
	}
}

func init() {
	Register("litellm", &LiteLLMProvider{})
	Register("gemini", &GeminiProvider{})
	Register("openai", &OpenAIProvider{})
	Register("anthropic", &AnthropicProvider{})
}
