package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/archive"
	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/models"
)

func newLoginCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "login [api-key]",
		Short: "Save the AI API key in the local store",
		Long: `Save the AI API key in the local store. Without an argument the key is
read from standard input. Keys in the environment (GEMINI_API_KEY,
OPENAI_API_KEY) take precedence over the saved key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			} else {
				line, err := readLine(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), "API key: ")
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}
				key = line
			}

			return rt.run(func(app *App) error {
				if err := app.Processor.SaveAPIKey(key); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
				if app.Gateway.HasEnvironmentKey() {
					fmt.Fprintln(cmd.OutOrStdout(), "Note: the key from the environment is used while it is set")
				}
				return nil
			})
		},
	}
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved AI API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				if err := app.Processor.ClearAPIKey(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
				return nil
			})
		},
	}
}

func newStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active sets and the AI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				out := cmd.OutOrStdout()
				state := app.Processor.State()
				config := app.Gateway.Config()

				fmt.Fprintf(out, "Language:        %s\n", state.Language)
				if set, ok := state.ActiveSet(); ok {
					fmt.Fprintf(out, "Active set:      #%d %s (%s, %d words)\n", set.ID, set.Topic, set.Level, len(set.VocabularyList))
				} else {
					fmt.Fprintln(out, "Active set:      none")
				}
				fmt.Fprintf(out, "Saved sets:      %d\n", len(state.SavedSets))
				fmt.Fprintf(out, "Suggestion sets: %d\n", len(state.SavedSuggestionSets))
				fmt.Fprintf(out, "Provider:        %s (%s, %s)\n", config.Provider, config.TextModel, config.TTSModel)
				fmt.Fprintf(out, "Circuit breaker: %s\n", app.Gateway.BreakerState())
				fmt.Fprintf(out, "API key:         %s\n", keySource(app))
				fmt.Fprintf(out, "Store:           %s\n", app.StorePath)
				if state.LastError != "" {
					fmt.Fprintf(out, "Last error:      %s\n", state.LastError)
				}
				return nil
			})
		},
	}
}

func keySource(app *App) string {
	if app.Gateway.HasEnvironmentKey() {
		return "environment"
	}
	if _, ok := app.Store.LoadAPIKey(); ok {
		return "saved"
	}
	return "missing"
}

func newModelsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available to the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				provider := app.Gateway.Config().Provider
				key, err := gateway.NewCredentialSource(provider, GetAPIKey(), app.Store).Resolve()
				if errors.Is(err, gateway.ErrMissingAPIKey) {
					return models.ErrNoAPIKey
				}
				if err != nil {
					return err
				}

				lister, err := models.NewLister(cmd.Context(), provider, key)
				if err != nil {
					return err
				}
				return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout())
			})
		},
	}
}

func newArchiveCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move the store aside and start with an empty one",
		Long: `Move the store file into an archive directory next to it, with a
timestamp in its name. The next run starts with an empty store; the
saved API key is archived along with the vocabulary sets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.inShell {
				return errors.New("the store is in use: leave the shell before archiving it")
			}
			driver, path := StoreLocation()
			if strings.EqualFold(driver, "memory") {
				return errors.New("the memory store has nothing to archive")
			}
			dest, err := archive.ArchiveStore(path)
			if err != nil {
				return fmt.Errorf("failed to archive store: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived store to %s\n", dest)
			return nil
		},
	}
}
