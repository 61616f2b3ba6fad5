package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
)

// languageOrCurrent parses name, falling back to the session language
func languageOrCurrent(app *App, name string) (content.Language, error) {
	if strings.TrimSpace(name) == "" {
		return app.Processor.State().Language.OrDefault(), nil
	}
	return content.ParseLanguage(name)
}

func newGenerateCommand(rt *runtime) *cobra.Command {
	var language, level string
	var count int

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a new vocabulary set",
		Long: `Generate a vocabulary set for a topic and proficiency level. The new set
is saved and becomes the active set. Without a topic the last used topic
is generated again.

Levels are A1 to C2 for English and "HSK 1" to "HSK 6" for Chinese.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(content.Counts, count) {
				return fmt.Errorf("invalid word count %d (use 10, 20 or 30)", count)
			}
			return rt.run(func(app *App) error {
				lang, err := languageOrCurrent(app, language)
				if err != nil {
					return err
				}
				topic := strings.Join(args, " ")
				if topic == "" {
					topic = app.Processor.State().Topic
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Generating %d %s words about %q...\n", count, lang, topic)
				set, err := app.Processor.GenerateVocabulary(cmd.Context(), lang, topic, level, count)
				if err != nil {
					return err
				}
				printSet(cmd.OutOrStdout(), set)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language to learn: english or chinese (default is the current language)")
	cmd.Flags().StringVar(&level, "level", "", "Proficiency level (default B1 or HSK 1)")
	cmd.Flags().IntVarP(&count, "count", "n", processor.DefaultCount, "Number of words: 10, 20 or 30")
	return cmd
}

func newSetsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "Manage saved vocabulary sets",
	}

	var language string
	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved vocabulary sets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				state := app.Processor.State()
				if all {
					printSetList(cmd.OutOrStdout(), state.SavedSets, state.ActiveSetID)
					return nil
				}
				lang, err := languageOrCurrent(app, language)
				if err != nil {
					return err
				}
				printSetList(cmd.OutOrStdout(), app.Processor.ListSets(lang), state.ActiveSetID)
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&language, "language", "l", "", "Only list sets of this language (default is the current language)")
	listCmd.Flags().BoolVarP(&all, "all", "a", false, "List the sets of every language")

	loadCmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Make a saved set the active set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				set, err := app.Processor.LoadSet(id)
				if err != nil {
					return err
				}
				printSet(cmd.OutOrStdout(), set)
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved set",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				if err := app.Processor.DeleteSet(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted set %d\n", id)
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved set (default is the active set)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				if len(args) == 0 {
					set, err := app.Processor.ActiveSet()
					if err != nil {
						return err
					}
					printSet(cmd.OutOrStdout(), set)
					return nil
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				for _, set := range app.Processor.State().SavedSets {
					if set.ID == id {
						printSet(cmd.OutOrStdout(), set)
						return nil
					}
				}
				return fmt.Errorf("vocabulary set %d: %w", id, processor.ErrSetNotFound)
			})
		},
	}

	cmd.AddCommand(listCmd, loadCmd, deleteCmd, showCmd)
	return cmd
}

func newExamplesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "examples <word>",
		Short: "Generate more example sentences for a word of the active set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := strings.Join(args, " ")
			return rt.run(func(app *App) error {
				examples, err := app.Processor.GenerateExamples(cmd.Context(), word)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Examples for %q:\n", word)
				for i, ex := range examples {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n   %s\n", i+1, ex.En, ex.Vi)
				}
				return nil
			})
		},
	}
}

func newTopicsCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List suggested topics and the levels of a language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := content.ParseLanguage(language)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range content.Topics {
				fmt.Fprintf(out, "%s:\n", group.Label)
				for _, topic := range group.Options {
					fmt.Fprintf(out, "  %s\n", topic)
				}
			}
			fmt.Fprintf(out, "\n%s levels:\n", lang)
			for _, level := range content.Levels(lang) {
				fmt.Fprintf(out, "  %-8s %s\n", level.Value, level.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "english", "Language whose levels are listed")
	return cmd
}

func newLanguageCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "language [english|chinese]",
		Short: "Show or switch the study language of this session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				if len(args) == 1 {
					lang, err := content.ParseLanguage(args[0])
					if err != nil {
						return err
					}
					app.Processor.SelectLanguage(lang)
				}
				state := app.Processor.State()
				fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", state.Language)
				return nil
			})
		},
	}
}

func newBatchCommand(rt *runtime) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Generate one vocabulary set per line of a topic file",
		Long: `Generate one vocabulary set per line of a file. Lines have the form

  Topic
  Topic = Level
  Topic = Level = Count

Blank lines and lines starting with # are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				lang, err := languageOrCurrent(app, language)
				if err != nil {
					return err
				}
				return app.Processor.ProcessBatch(cmd.Context(), args[0], lang)
			})
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language of the generated sets (default is the current language)")
	return cmd
}

func newExportCommand(rt *runtime) *cobra.Command {
	var opts processor.ExportOptions
	var setID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a vocabulary set as an Anki import file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if setID != "" {
				id, err := parseID(setID)
				if err != nil {
					return err
				}
				opts.SetID = id
			}
			return rt.run(func(app *App) error {
				return app.Processor.ExportAnki(cmd.Context(), opts)
			})
		},
	}

	cmd.Flags().StringVar(&setID, "set", "", "Set id to export (default is the active set)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "CSV file to write (default is <topic>_<level>.csv)")
	cmd.Flags().BoolVar(&opts.WithAudio, "audio", false, "Add AI pronunciation audio to the cards")
	return cmd
}
