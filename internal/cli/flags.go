package cli

import "time"

// Flags holds the persistent command-line flag values. Command specific
// options live with their commands.
type Flags struct {
	// General flags
	CfgFile   string
	LogLevel  string
	LogFormat string
	Staleness string

	// Store flags
	StorePath   string
	StoreDriver string

	// AI flags
	Provider           string
	Model              string
	TTSModel           string
	AIVoice            string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// NewFlags creates a new Flags instance with default values. Empty model
// and voice names select the provider's defaults.
func NewFlags() *Flags {
	return &Flags{
		LogLevel:           "warn",
		LogFormat:          "text",
		Staleness:          "apply",
		StoreDriver:        "file",
		Provider:           "gemini",
		Timeout:            60 * time.Second,
		BreakerMaxFailures: 5,
		BreakerTimeout:     30 * time.Second,
	}
}
