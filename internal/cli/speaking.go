package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
)

// speakAndWait speaks text. Outside the shell it blocks until speaking has
// finished, since closing the App stops any audio still playing.
func (r *runtime) speakAndWait(ctx context.Context, app *App, text string, voice processor.Voice) error {
	done, err := app.Processor.Speak(ctx, text, voice)
	if err != nil {
		return err
	}
	if r.inShell || done == nil {
		return nil
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
	return nil
}

func newPodcastCommand(rt *runtime) *cobra.Command {
	var length int
	var speak bool

	cmd := &cobra.Command{
		Use:   "podcast",
		Short: "Write a podcast script that uses the words of the active set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				script, err := app.Processor.GeneratePodcast(cmd.Context(), length)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMarkup(script))
				if speak {
					return rt.speakAndWait(cmd.Context(), app, script, processor.VoiceAuto)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&length, "length", processor.DefaultPodcastLength, "Approximate script length in words")
	cmd.Flags().BoolVar(&speak, "speak", false, "Read the script aloud")
	return cmd
}

// answerLoop asks each question in turn and prints the feedback to every
// non-empty answer. It stops at the end of the input.
func answerLoop(cmd *cobra.Command, questions []string, check func(index int, answer string) (string, error)) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for i, question := range questions {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, question)
		answer, err := readLine(in, out, "Câu trả lời của bạn (Enter để bỏ qua): ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		feedback, err := check(i, answer)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n", renderMarkup(feedback))
	}
	return nil
}

func newIeltsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ielts",
		Short: "IELTS style speaking tests for the active set",
	}

	var count int
	var interactive bool
	part1Cmd := &cobra.Command{
		Use:   "part1",
		Short: "Generate part 1 questions with sample answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				items, err := app.Processor.GenerateIeltsPart1(cmd.Context(), count)
				if err != nil {
					return err
				}
				if interactive {
					questions := make([]string, len(items))
					for i, item := range items {
						questions[i] = item.Question
					}
					return answerLoop(cmd, questions, func(index int, answer string) (string, error) {
						return app.Processor.EvaluateIelts(cmd.Context(), 1, index, answer)
					})
				}
				printPart1(cmd.OutOrStdout(), items)
				return nil
			})
		},
	}
	part1Cmd.Flags().IntVarP(&count, "count", "n", processor.DefaultPart1Questions, "Number of questions")
	part1Cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Answer the questions and get an evaluation")

	var answerCard bool
	part2Cmd := &cobra.Command{
		Use:   "part2",
		Short: "Generate a part 2 cue card with a sample answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				item, err := app.Processor.GenerateIeltsPart2(cmd.Context())
				if err != nil {
					return err
				}
				if answerCard {
					return answerLoop(cmd, []string{cueCard(item)}, func(_ int, answer string) (string, error) {
						return app.Processor.EvaluateIelts(cmd.Context(), 2, 0, answer)
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cueCard(item))
				fmt.Fprintf(cmd.OutOrStdout(), "\nBài mẫu:\n%s\n", renderMarkup(item.Answer))
				return nil
			})
		},
	}
	part2Cmd.Flags().BoolVarP(&answerCard, "interactive", "i", false, "Answer the cue card and get an evaluation")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate <part> <question> <answer...>",
		Short: "Evaluate an answer to a generated question (shell only)",
		Long: `Evaluate an answer to question number <question> of part 1, or to the
part 2 cue card. Generated questions live in the session, so this works
inside the interactive shell.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid part: %q", args[0])
			}
			question, err := strconv.Atoi(args[1])
			if err != nil || question < 1 {
				return fmt.Errorf("invalid question number: %q", args[1])
			}
			answer := strings.Join(args[2:], " ")
			return rt.run(func(app *App) error {
				feedback, err := app.Processor.EvaluateIelts(cmd.Context(), part, question-1, answer)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMarkup(feedback))
				return nil
			})
		},
	}

	cmd.AddCommand(part1Cmd, part2Cmd, evaluateCmd)
	return cmd
}

func printPart1(w io.Writer, items []content.IeltsPart1Item) {
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n   %s\n\n", i+1, item.Question, renderMarkup(item.Answer))
	}
}

func cueCard(item *content.IeltsPart2Item) string {
	var sb strings.Builder
	sb.WriteString(item.Topic)
	for _, line := range item.CueCard {
		sb.WriteString("\n  - ")
		sb.WriteString(line)
	}
	return sb.String()
}

func newSpeakingCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speaking",
		Short: "Open speaking practice with the words of the active set",
	}

	var count int
	var interactive bool
	practiceCmd := &cobra.Command{
		Use:   "practice",
		Short: "Generate practice questions with suggested words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				questions, err := app.Processor.GenerateSpeakingPractice(cmd.Context(), count)
				if err != nil {
					return err
				}
				texts := make([]string, len(questions))
				for i, q := range questions {
					texts[i] = q.Question
					if len(q.SuggestedWords) > 0 {
						texts[i] += "\n   Từ gợi ý: " + strings.Join(q.SuggestedWords, ", ")
					}
				}
				if interactive {
					return answerLoop(cmd, texts, func(index int, answer string) (string, error) {
						return app.Processor.CheckSpeakingAnswer(cmd.Context(), index, answer)
					})
				}
				for i, text := range texts {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, text)
				}
				return nil
			})
		},
	}
	practiceCmd.Flags().IntVarP(&count, "count", "n", processor.DefaultPracticeCount, "Number of questions")
	practiceCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Answer the questions and get feedback")

	checkCmd := &cobra.Command{
		Use:   "check <question> <answer...>",
		Short: "Get feedback on an answer to a practice question (shell only)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := strconv.Atoi(args[0])
			if err != nil || question < 1 {
				return fmt.Errorf("invalid question number: %q", args[0])
			}
			answer := strings.Join(args[1:], " ")
			return rt.run(func(app *App) error {
				feedback, err := app.Processor.CheckSpeakingAnswer(cmd.Context(), question-1, answer)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderMarkup(feedback))
				return nil
			})
		},
	}

	cmd.AddCommand(practiceCmd, checkCmd)
	return cmd
}

func newSuggestionsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Conversation phrases for a topic",
	}

	var level string
	generateCmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate and save speaking suggestions (default is the current topic)",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			return rt.run(func(app *App) error {
				set, err := app.Processor.GenerateSuggestions(cmd.Context(), topic, level)
				if err != nil {
					return err
				}
				printSuggestionSet(cmd.OutOrStdout(), set)
				return nil
			})
		},
	}
	generateCmd.Flags().StringVar(&level, "level", "", "Proficiency level (default is the current level)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved suggestion sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				state := app.Processor.State()
				printSuggestionList(cmd.OutOrStdout(), state.SavedSuggestionSets, state.ActiveSuggestionID)
				return nil
			})
		},
	}

	loadCmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Make a saved suggestion set active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				set, err := app.Processor.LoadSuggestionSet(id)
				if err != nil {
					return err
				}
				printSuggestionSet(cmd.OutOrStdout(), set)
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved suggestion set",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				if err := app.Processor.DeleteSuggestionSet(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted suggestion set %d\n", id)
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active suggestion set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				state := app.Processor.State()
				for _, set := range state.SavedSuggestionSets {
					if set.ID == state.ActiveSuggestionID {
						printSuggestionSet(cmd.OutOrStdout(), set)
						return nil
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No active suggestion set")
				return nil
			})
		},
	}

	cmd.AddCommand(generateCmd, listCmd, loadCmd, deleteCmd, showCmd)
	return cmd
}

func newSpeakCommand(rt *runtime) *cobra.Command {
	var voice string

	cmd := &cobra.Command{
		Use:   "speak <text...>",
		Short: "Read text aloud in the language of the active set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := processor.ParseVoice(voice)
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				return rt.speakAndWait(cmd.Context(), app, strings.Join(args, " "), v)
			})
		},
	}

	cmd.Flags().StringVar(&voice, "voice", "auto", "Voice: auto, ai or system")
	return cmd
}

func newStopCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop audio playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				app.Processor.StopAudio()
				return nil
			})
		},
	}
}
