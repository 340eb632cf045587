package llm

import (
	"errors"
	"fmt"
)

// UnsupportedProviderError is returned when no provider is registered for
// the configured id. It is never retried.
type UnsupportedProviderError struct {
	Provider ProviderID
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %q", e.Provider)
}

// ConfigError reports a configuration the provider cannot work with, such as
// a missing API key. It is never retried.
type ConfigError struct {
	Provider ProviderID
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q: %s", e.Provider, e.Reason)
}

// MalformedResponseError is returned when a reply cannot be turned into a
// commit message. The gateway retries it like a transient failure.
type MalformedResponseError struct {
	Reason   string
	Response string
}

func (e *MalformedResponseError) Error() string {
	return "malformed LLM response: " + e.Reason
}

// GenerationExhaustedError wraps the last failure once every attempt failed.
type GenerationExhaustedError struct {
	Attempts int
	Err      error
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationExhaustedError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a configuration problem that
// retrying cannot fix.
func IsConfigError(err error) bool {
	var unsupported *UnsupportedProviderError
	var cfgErr *ConfigError
	return errors.As(err, &unsupported) || errors.As(err, &cfgErr)
}
