package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/session"
)

// Config keys
const (
	keyProvider           = "ai.provider"
	keyModel              = "ai.model"
	keyTTSModel           = "ai.tts_model"
	keyVoice              = "ai.voice"
	keyTimeout            = "ai.timeout"
	keyAPIKey             = "ai.api_key"
	keyStoreDriver        = "store.driver"
	keyStorePath          = "store.path"
	keyBreakerMaxFailures = "breaker.max_failures"
	keyBreakerTimeout     = "breaker.timeout"
	keyStaleness          = "session.staleness"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"
)

// envKeyReplacer maps config keys such as "ai.tts_model" to environment
// variable suffixes such as "AI_TTS_MODEL"
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vocabbuilder" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabbuilder")
	}

	// Environment variables, e.g. VOCABBUILDER_AI_PROVIDER
	viper.SetEnvPrefix("VOCABBUILDER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the API key from the environment or config. The
// provider specific variables (GEMINI_API_KEY, ...) are checked by the
// gateway itself.
func GetAPIKey() string {
	if key := os.Getenv("VOCABBUILDER_API_KEY"); key != "" {
		return key
	}
	return viper.GetString(keyAPIKey)
}

// GatewayConfig builds the AI gateway configuration from viper
func GatewayConfig() *gateway.Config {
	var config *gateway.Config
	switch provider := viper.GetString(keyProvider); provider {
	case "openai":
		config = gateway.DefaultOpenAIConfig()
	case "", "gemini":
		config = gateway.DefaultConfig()
	default:
		config = gateway.DefaultConfig()
		config.Provider = provider
	}

	if model := viper.GetString(keyModel); model != "" {
		config.TextModel = model
	}
	if model := viper.GetString(keyTTSModel); model != "" {
		config.TTSModel = model
	}
	if voice := viper.GetString(keyVoice); voice != "" {
		config.Voice = voice
	}
	if viper.IsSet(keyTimeout) {
		config.Timeout = viper.GetDuration(keyTimeout)
	}
	if viper.IsSet(keyBreakerMaxFailures) {
		config.BreakerMaxFailures = viper.GetUint32(keyBreakerMaxFailures)
	}
	if viper.IsSet(keyBreakerTimeout) {
		config.BreakerTimeout = viper.GetDuration(keyBreakerTimeout)
	}
	return config
}

// StalenessPolicy returns the configured staleness policy
func StalenessPolicy() (session.StalenessPolicy, error) {
	return session.ParseStalenessPolicy(viper.GetString(keyStaleness))
}

// StoreLocation returns the configured store driver and path. Without a
// configured path the store lives in ~/.local/state/vocabbuilder.
func StoreLocation() (driver, path string) {
	driver = viper.GetString(keyStoreDriver)
	if driver == "" {
		driver = "file"
	}
	path = viper.GetString(keyStorePath)
	if path == "" {
		path = DefaultStorePath(driver)
	}
	return driver, path
}

// DefaultStorePath returns the store location for driver in the user's
// state directory
func DefaultStorePath(driver string) string {
	home, _ := os.UserHomeDir()
	name := "store.json"
	if driver == "sqlite" {
		name = "store.db"
	}
	return filepath.Join(home, ".local", "state", "vocabbuilder", name)
}
