package gateway

import (
	"context"
	"fmt"
	"time"
)

// TextRequest is a single text generation call
type TextRequest struct {
	Model       string
	Prompt      string
	Temperature *float32
	JSON        bool // ask the backend for a JSON response body
}

// SpeechRequest is a single speech synthesis call
type SpeechRequest struct {
	Model string
	Text  string
	Voice string
}

// Speech is synthesized audio as returned by a backend. AudioData is base64
// encoded 16-bit PCM, MIMEType carries the sample rate (e.g. "audio/L16;rate=24000").
type Speech struct {
	AudioData string
	MIMEType  string
}

// Backend is a generative AI service
type Backend interface {
	// GenerateText returns the text of the first candidate
	GenerateText(ctx context.Context, req TextRequest) (string, error)

	// GenerateSpeech returns synthesized audio for req.Text
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*Speech, error)

	// Name returns the backend name
	Name() string
}

// BackendFactory creates a backend for an API key
type BackendFactory func(apiKey string) (Backend, error)

// Config holds the gateway settings
type Config struct {
	Provider    string // "gemini" or "openai"
	TextModel   string
	TTSModel    string
	Voice       string
	Temperature float32 // used for vocabulary generation
	Timeout     time.Duration

	// Circuit breaker. MaxFailures 0 disables it.
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// DefaultConfig returns the Gemini defaults
func DefaultConfig() *Config {
	return &Config{
		Provider:           "gemini",
		TextModel:          "gemini-2.5-flash",
		TTSModel:           "gemini-2.5-flash-preview-tts",
		Voice:              "Kore",
		Temperature:        0.4,
		Timeout:            60 * time.Second,
		BreakerMaxFailures: 5,
		BreakerTimeout:     30 * time.Second,
	}
}

// DefaultOpenAIConfig returns defaults for the OpenAI backend
func DefaultOpenAIConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.TextModel = "gpt-4o-mini"
	cfg.TTSModel = "gpt-4o-mini-tts"
	cfg.Voice = "alloy"
	return cfg
}

// NewBackend creates the backend selected by config
func NewBackend(config *Config, apiKey string) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch config.Provider {
	case "gemini", "":
		return NewGeminiBackend(apiKey)
	case "openai":
		return NewOpenAIBackend(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", config.Provider)
	}
}

// Factory returns a BackendFactory bound to config
func Factory(config *Config) BackendFactory {
	return func(apiKey string) (Backend, error) {
		return NewBackend(config, apiKey)
	}
}
