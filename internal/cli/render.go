package cli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
)

var strongPattern = regexp.MustCompile(`(?is)<strong>(.*?)</strong>`)

// renderMarkup turns the <strong> markers of generated text into *word*
// and drops any other markup
func renderMarkup(s string) string {
	return processor.PlainText(strongPattern.ReplaceAllString(s, "*$1*"))
}

func printSet(w io.Writer, set content.VocabularySet) {
	fmt.Fprintf(w, "#%d  %s (%s, %s, %d words)\n\n",
		set.ID, set.Topic, set.Level, set.EffectiveLanguage(), len(set.VocabularyList))

	chinese := set.EffectiveLanguage() == content.Chinese
	for i, item := range set.VocabularyList {
		printItem(w, i+1, item, chinese)
	}
}

func printItem(w io.Writer, n int, item content.VocabularyItem, chinese bool) {
	pronunciation := item.IPA
	if pronunciation != "" && !chinese && !strings.HasPrefix(pronunciation, "/") {
		pronunciation = "/" + pronunciation + "/"
	}

	fmt.Fprintf(w, "%2d. %s", n, item.Word)
	if item.POS != "" {
		fmt.Fprintf(w, " (%s)", item.POS)
	}
	if pronunciation != "" {
		fmt.Fprintf(w, " %s", pronunciation)
	}
	fmt.Fprintf(w, "\n    %s\n", item.Meaning)
	if item.Example != "" {
		fmt.Fprintf(w, "    Ví dụ: %s\n", item.Example)
	}
	if item.VIExampleFull != "" {
		fmt.Fprintf(w, "           %s\n", item.VIExampleFull)
	}
	if item.ENDefinition != "" {
		fmt.Fprintf(w, "    Định nghĩa: %s\n", item.ENDefinition)
	}
	if item.VIDefinition != "" {
		fmt.Fprintf(w, "                %s\n", item.VIDefinition)
	}
	for _, ex := range item.GeneratedExamples {
		fmt.Fprintf(w, "    • %s\n      %s\n", ex.En, ex.Vi)
	}
	fmt.Fprintln(w)
}

// printSetList prints sets newest first. sets are in creation order.
func printSetList(w io.Writer, sets []content.VocabularySet, activeID int64) {
	if len(sets) == 0 {
		fmt.Fprintln(w, "No saved vocabulary sets")
		return
	}
	for i := len(sets) - 1; i >= 0; i-- {
		set := sets[i]
		marker := " "
		if set.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d  %-28s %-7s %-8s %d words\n",
			marker, set.ID, set.Topic, set.Level, set.EffectiveLanguage(), len(set.VocabularyList))
	}
}

func printSuggestionSet(w io.Writer, set content.SpeakingSuggestionSet) {
	fmt.Fprintf(w, "#%d  %s (%s)\n", set.ID, set.Topic, set.Level)
	for _, s := range set.Suggestions {
		fmt.Fprintf(w, "\n%s\n", s.Category)
		for _, phrase := range s.Phrases {
			fmt.Fprintf(w, "  - %s\n", phrase.En)
			if phrase.Vi != "" {
				fmt.Fprintf(w, "    %s\n", phrase.Vi)
			}
		}
	}
}

func printSuggestionList(w io.Writer, sets []content.SpeakingSuggestionSet, activeID int64) {
	if len(sets) == 0 {
		fmt.Fprintln(w, "No saved suggestion sets")
		return
	}
	for _, set := range sets {
		marker := " "
		if set.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d  %-28s %-7s %d categories\n", marker, set.ID, set.Topic, set.Level, len(set.Suggestions))
	}
}

// readLine prints prompt and reads one trimmed line. io.EOF is returned only
// when the input ended before any text.
func readLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readChoice reads a 1-based option number in [1, n] and returns it 0-based
func readChoice(in *bufio.Reader, out io.Writer, n int) (int, error) {
	for {
		line, err := readLine(in, out, fmt.Sprintf("Chọn (1-%d): ", n))
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err == nil && choice >= 1 && choice <= n {
			return choice - 1, nil
		}
		fmt.Fprintf(out, "Please enter a number between 1 and %d\n", n)
	}
}

// parseID parses a set id argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid set id: %q", s)
	}
	return id, nil
}
