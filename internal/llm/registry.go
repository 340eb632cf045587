package llm

const (
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderGemini     ProviderID = "gemini"
	ProviderDeepSeek   ProviderID = "deepseek"
	ProviderOpenRouter ProviderID = "openrouter"
	ProviderOllama     ProviderID = "ollama"
	ProviderCustom     ProviderID = "custom"
)

// Known provider base URLs for OpenAI-compatible services.
var providerBaseURLs = map[ProviderID]string{
	ProviderDeepSeek:   "https://api.deepseek.com/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderOllama:     "http://localhost:11434/v1",
}

// Default models for each provider.
var defaultModels = map[ProviderID]string{
	ProviderOpenAI:     "gpt-5-nano",
	ProviderAnthropic:  "claude-haiku-4-5",
	ProviderGemini:     "gemini-2.5-flash-lite",
	ProviderDeepSeek:   "deepseek-chat",
	ProviderOpenRouter: "openai/gpt-4o-mini",
	ProviderOllama:     "qwen2.5-coder:7b",
}

// ProviderNames returns the list of supported provider names.
func ProviderNames() []ProviderID {
	return []ProviderID{
		ProviderOpenAI, ProviderAnthropic, ProviderGemini,
		ProviderDeepSeek, ProviderOpenRouter, ProviderOllama, ProviderCustom,
	}
}

// ProviderDisplayNames returns human-readable names for providers.
func ProviderDisplayNames() map[ProviderID]string {
	return map[ProviderID]string{
		ProviderOpenAI:     "OpenAI",
		ProviderAnthropic:  "Anthropic (Claude)",
		ProviderGemini:     "Google Gemini",
		ProviderDeepSeek:   "DeepSeek",
		ProviderOpenRouter: "OpenRouter",
		ProviderOllama:     "Ollama (local)",
		ProviderCustom:     "Custom (OpenAI-compatible)",
	}
}

// DefaultModel returns the default model for a given provider.
func DefaultModel(provider ProviderID) string {
	return defaultModels[provider]
}

// Registry resolves a provider id to its implementation by exact match.
type Registry struct {
	providers map[ProviderID]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[ProviderID]Provider)}
}

// Register binds id to p, replacing any earlier binding.
func (r *Registry) Register(id ProviderID, p Provider) {
	r.providers[id] = p
}

// Lookup returns the provider registered for id.
func (r *Registry) Lookup(id ProviderID) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: id}
	}
	return p, nil
}

// DefaultRegistry registers every built-in provider.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ProviderOpenAI, NewOpenAIProvider())
	r.Register(ProviderAnthropic, NewAnthropicProvider())
	r.Register(ProviderGemini, NewGeminiProvider())
	r.Register(ProviderDeepSeek, NewOpenAICompatProvider(providerBaseURLs[ProviderDeepSeek], true))
	r.Register(ProviderOpenRouter, NewOpenAICompatProvider(providerBaseURLs[ProviderOpenRouter], true))
	r.Register(ProviderOllama, NewOpenAICompatProvider(providerBaseURLs[ProviderOllama], false))
	r.Register(ProviderCustom, NewOpenAICompatProvider("", true))
	return r
}
