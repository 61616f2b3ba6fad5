package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabbuilder/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	return createRootCommand(newRuntime(flags))
}

func createRootCommand(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocabbuilder",
		Short: "AI vocabulary builder for Vietnamese learners of English and Chinese",
		Long: `vocabbuilder generates topic vocabulary sets with Vietnamese meanings,
example sentences and definitions, and builds practice material on top of
them: podcast scripts, IELTS style speaking tests, quizzes and games.

Examples:
  vocabbuilder                               # Start the interactive shell
  vocabbuilder generate Family --level B1    # Generate a vocabulary set
  vocabbuilder generate 家庭 -l chinese       # Chinese (HSK) vocabulary
  vocabbuilder quiz --mode vi-en             # Quiz on the active set
  vocabbuilder batch topics.txt              # One set per line of a file`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: rt.inShell,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, rt)
		},
	}

	// Set up flags
	setupFlags(rootCmd, rt.flags)

	rootCmd.AddCommand(
		newGenerateCommand(rt),
		newSetsCommand(rt),
		newExamplesCommand(rt),
		newTopicsCommand(),
		newLanguageCommand(rt),
		newBatchCommand(rt),
		newExportCommand(rt),
		newPodcastCommand(rt),
		newIeltsCommand(rt),
		newSpeakingCommand(rt),
		newSuggestionsCommand(rt),
		newSpeakCommand(rt),
		newStopCommand(rt),
		newQuizCommand(rt),
		newMatchCommand(rt),
		newSpellCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newStatusCommand(rt),
		newModelsCommand(rt),
		newArchiveCommand(rt),
		newShellCommand(rt),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", flags.CfgFile, "config file (default is $HOME/.vocabbuilder.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")
	cmd.PersistentFlags().StringVar(&flags.Staleness, "staleness", flags.Staleness, "Late AI responses: apply or drop")

	// Store flags
	cmd.PersistentFlags().StringVar(&flags.StorePath, "store", flags.StorePath, "Store location (default is ~/.local/state/vocabbuilder/store.json)")
	cmd.PersistentFlags().StringVar(&flags.StoreDriver, "store-driver", flags.StoreDriver, "Store driver: file, sqlite or memory")

	// AI flags
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "AI provider: gemini or openai")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", flags.Model, "Text model (default depends on the provider)")
	cmd.PersistentFlags().StringVar(&flags.TTSModel, "tts-model", flags.TTSModel, "Speech model (default depends on the provider)")
	cmd.PersistentFlags().StringVar(&flags.AIVoice, "ai-voice", flags.AIVoice, "AI voice name, e.g. Kore (gemini) or alloy (openai)")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of a single AI request")
	cmd.PersistentFlags().Uint32Var(&flags.BreakerMaxFailures, "breaker-max-failures", flags.BreakerMaxFailures, "Consecutive AI failures that open the circuit breaker (0 disables it)")
	cmd.PersistentFlags().DurationVar(&flags.BreakerTimeout, "breaker-timeout", flags.BreakerTimeout, "How long the circuit breaker stays open")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// flagConfigKeys maps persistent flags to their config keys
var flagConfigKeys = map[string]string{
	"log-level":            keyLogLevel,
	"log-format":           keyLogFormat,
	"staleness":            keyStaleness,
	"store":                keyStorePath,
	"store-driver":         keyStoreDriver,
	"provider":             keyProvider,
	"model":                keyModel,
	"tts-model":            keyTTSModel,
	"ai-voice":             keyVoice,
	"timeout":              keyTimeout,
	"breaker-max-failures": keyBreakerMaxFailures,
	"breaker-timeout":      keyBreakerTimeout,
}

func bindFlagsToViper(cmd *cobra.Command) {
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if key, ok := flagConfigKeys[flag.Name]; ok {
			viper.BindPFlag(key, flag)
		}
	})
}

// setupLogging installs the configured logger as the default logger
func (r *runtime) setupLogging(cmd *cobra.Command) error {
	logger, err := NewLogger(cmd.ErrOrStderr(), viper.GetString(keyLogLevel), viper.GetString(keyLogFormat))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	r.logger = logger
	return nil
}
