package config

import (
	"github.com/lieyanc/czai/internal/llm"
)

// EnvAPIKey takes precedence over every provider-specific variable.
const EnvAPIKey = "CZAI_API_KEY"

var providerKeyEnv = map[llm.ProviderID][]string{
	llm.ProviderOpenAI:     {"OPENAI_API_KEY"},
	llm.ProviderAnthropic:  {"ANTHROPIC_API_KEY"},
	llm.ProviderGemini:     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	llm.ProviderDeepSeek:   {"DEEPSEEK_API_KEY"},
	llm.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
}

// KeyEnvVars lists the variables consulted for provider, in order.
func KeyEnvVars(provider llm.ProviderID) []string {
	return append([]string{EnvAPIKey}, providerKeyEnv[provider]...)
}

// NeedsAPIKey reports whether provider requires a key at all.
func NeedsAPIKey(provider llm.ProviderID) bool {
	return provider != llm.ProviderOllama
}

// ResolveAPIKey returns the first non-empty key from the environment, or ""
// when the caller has to ask the user.
func ResolveAPIKey(provider llm.ProviderID, getenv func(string) string) string {
	for _, name := range KeyEnvVars(provider) {
		if v := getenv(name); v != "" {
			return v
		}
	}
	return ""
}
