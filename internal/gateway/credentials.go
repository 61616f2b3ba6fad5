package gateway

import (
	"errors"
	"os"
)

// ErrMissingAPIKey means no key was found in the environment, the config
// or the local store
var ErrMissingAPIKey = errors.New("API key is missing: log in or set the GEMINI_API_KEY environment variable")

// KeyStore is the persisted fallback for the API key
type KeyStore interface {
	LoadAPIKey() (string, bool)
}

// CredentialSource resolves the API key. The environment (or config file)
// wins over a key entered by the user and stored locally.
type CredentialSource struct {
	envNames  []string
	configKey string
	store     KeyStore
	getenv    func(string) string
}

// NewCredentialSource creates a credential source for provider. configKey is
// the key from the config file (may be empty), store may be nil.
func NewCredentialSource(provider, configKey string, store KeyStore) *CredentialSource {
	names := []string{"GEMINI_API_KEY", "API_KEY"}
	if provider == "openai" {
		names = []string{"OPENAI_API_KEY", "API_KEY"}
	}
	return &CredentialSource{
		envNames:  names,
		configKey: configKey,
		store:     store,
		getenv:    os.Getenv,
	}
}

// EnvironmentKey returns the key from the environment or config, or ""
func (c *CredentialSource) EnvironmentKey() string {
	for _, name := range c.envNames {
		if key := c.getenv(name); key != "" {
			return key
		}
	}
	return c.configKey
}

// HasEnvironmentKey reports whether the user can skip key entry
func (c *CredentialSource) HasEnvironmentKey() bool {
	return c.EnvironmentKey() != ""
}

// Resolve returns the key to use for the next request
func (c *CredentialSource) Resolve() (string, error) {
	if key := c.EnvironmentKey(); key != "" {
		return key, nil
	}
	if c.store != nil {
		if key, ok := c.store.LoadAPIKey(); ok && key != "" {
			return key, nil
		}
	}
	return "", ErrMissingAPIKey
}
