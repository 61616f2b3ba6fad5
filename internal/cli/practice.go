package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/processor"
	"codeberg.org/snonux/vocabbuilder/internal/quiz"
)

func newQuizCommand(rt *runtime) *cobra.Command {
	var mode string
	var count int

	modes := make([]string, len(quiz.Modes))
	for i, m := range quiz.Modes {
		modes[i] = string(m)
	}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Multiple choice quiz on the active set",
		Long: `Multiple choice quiz on the active set. Modes:

  en-vi      word, choose the Vietnamese meaning
  vi-en      Vietnamese meaning, choose the word
  en-blank   example sentence with a blank, choose the word
  vi-prompt  Vietnamese sentence with a blank, choose the word
  en-def     definition, choose the word
  vi-def     Vietnamese definition, choose the word`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := quiz.ParseMode(mode)
			if err != nil {
				return err
			}
			return rt.run(func(app *App) error {
				set, err := app.Processor.ActiveSet()
				if err != nil {
					return err
				}
				questions, err := quiz.BuildQuiz(set.VocabularyList, m, count, app.Processor.Rand())
				if err != nil {
					return err
				}
				return runQuiz(cmd, m, questions)
			})
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(quiz.ModeEnglishToVietnamese), "Quiz mode: "+strings.Join(modes, ", "))
	cmd.Flags().IntVarP(&count, "questions", "n", quiz.QuestionCounts[1], "Number of questions")
	return cmd
}

func runQuiz(cmd *cobra.Command, mode quiz.Mode, questions []quiz.Question) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	answers := make([]int, 0, len(questions))
	for i, q := range questions {
		fmt.Fprintf(out, "\nCâu %d/%d: %s\n", i+1, len(questions), mode.Prompt(q.Correct))
		for j, option := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, mode.OptionText(option))
		}
		choice, err := readChoice(in, out, len(q.Options))
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		answers = append(answers, choice)
		fmt.Fprintln(out, q.Feedback(choice))
	}

	fmt.Fprintf(out, "\n%s\n", quiz.ScoreLine(quiz.Score(questions, answers), len(questions)))
	return nil
}

func newMatchCommand(rt *runtime) *cobra.Command {
	var pairs int

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match the words of the active set with their meanings",
		Long: `Match the words of the active set with their Vietnamese meanings.
Answer with a word number and a meaning letter, e.g. "3 b".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				set, err := app.Processor.ActiveSet()
				if err != nil {
					return err
				}
				n := pairs
				if n > len(set.VocabularyList) {
					n = len(set.VocabularyList)
				}
				game, err := quiz.NewMatchingGame(set.VocabularyList, n, app.Processor.Rand())
				if err != nil {
					return err
				}
				return runMatch(cmd, game)
			})
		},
	}

	cmd.Flags().IntVarP(&pairs, "pairs", "n", quiz.DefaultPairCount, "Number of word pairs")
	return cmd
}

func runMatch(cmd *cobra.Command, game *quiz.MatchingGame) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for !game.Done() {
		fmt.Fprintln(out)
		for i := range game.Words {
			word := game.Words[i].Word
			if game.IsMatched(word) {
				word = "✓ " + word
			}
			meaning := game.Meanings[i].Meaning
			if game.IsMatched(game.Meanings[i].Word) {
				meaning = "✓ " + meaning
			}
			fmt.Fprintf(out, "%2d. %-24s %c) %s\n", i+1, word, 'a'+rune(i), meaning)
		}

		line, err := readLine(in, out, "Ghép (số chữ): ")
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		wordIdx, meaningIdx, ok := parsePair(line, len(game.Words))
		if !ok {
			fmt.Fprintln(out, `Please answer with a number and a letter, e.g. "3 b"`)
			continue
		}
		word := game.Words[wordIdx].Word
		if game.Match(word, game.Meanings[meaningIdx].Word) {
			fmt.Fprintln(out, quiz.Feedback(true, word))
		} else {
			fmt.Fprintln(out, "Chưa đúng, thử lại!")
		}
	}

	if game.Done() {
		fmt.Fprintf(out, "\nHoàn thành! %d cặp sau %d lần thử.\n", len(game.Words), game.Attempts())
	}
	return nil
}

// parsePair parses "3 b" or "3b" into 0-based word and meaning indexes
func parsePair(s string, n int) (word, meaning int, ok bool) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if len(s) < 2 {
		return 0, 0, false
	}
	letter := rune(s[len(s)-1])
	number, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || number < 1 || number > n || letter < 'a' || int(letter-'a') >= n {
		return 0, 0, false
	}
	return number - 1, int(letter - 'a'), true
}

func newSpellCommand(rt *runtime) *cobra.Command {
	var listen bool

	cmd := &cobra.Command{
		Use:   "spell",
		Short: "Spelling drill: type the word for each meaning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.run(func(app *App) error {
				set, err := app.Processor.ActiveSet()
				if err != nil {
					return err
				}
				drill := quiz.NewSpellingDrill(set.VocabularyList, app.Processor.Rand())

				in := bufio.NewReader(cmd.InOrStdin())
				out := cmd.OutOrStdout()
				for !drill.Done() {
					item, _ := drill.Current()
					_, asked := drill.Score()
					fmt.Fprintf(out, "\n%d/%d: %s\n", asked+1, len(drill.Items), item.Meaning)
					input, err := readLine(in, out, "Nhập từ: ")
					if err == io.EOF {
						break
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(out, quiz.Feedback(drill.Check(input), item.Word))
					if listen {
						if err := rt.speakAndWait(cmd.Context(), app, item.Word, processor.VoiceAuto); err != nil {
							rt.logger.Warn("Could not speak word", "error", err)
						}
					}
				}

				correct, asked := drill.Score()
				fmt.Fprintf(out, "\n%s\n", quiz.ScoreLine(correct, asked))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&listen, "listen", true, "Read each word aloud after it is answered")
	return cmd
}
