package prompt

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

const (
	// FeedbackLanguage is the language of meanings, translations and feedback
	FeedbackLanguage = "VIETNAMESE"

	// MarkerOpen and MarkerClose wrap every reused vocabulary word in
	// generated prose
	MarkerOpen  = "<strong>"
	MarkerClose = "</strong>"

	// ExampleSentenceCount is how many sentences ExampleSentences asks for
	ExampleSentenceCount = 5
)

// VocabularyFields are the fields every generated vocabulary object must carry
var VocabularyFields = []string{
	"word", "pos", "ipa", "meaning", "example",
	"en_definition", "vi_example", "vi_example_full", "vi_definition",
}

// Strategy is the set of prompt templates for one study language
type Strategy struct {
	Language            content.Language
	Vocabulary          func(topic, level string, count int) string
	Podcast             func(topic string, length int, words []string) string
	TestPart1           func(topic string, count int, words []string, level string) string
	TestPart2           func(topic string, words []string, level string) string
	SpeakingPractice    func(topic string, words []string, count int, level string) string
	SpeakingCheck       func(question, answer string) string
	SpeakingEvaluation  func(part int, topic, level, question, answer string) string
	SpeakingSuggestions func(topic, level string) string
	ExampleSentences    func(word, level string) string
}

var strategies = map[content.Language]Strategy{
	content.English: englishStrategy,
	content.Chinese: chineseStrategy,
}

// GetStrategy returns the templates for lang. Unknown or empty languages get
// the English strategy.
func GetStrategy(lang content.Language) Strategy {
	if s, ok := strategies[lang]; ok {
		return s
	}
	return englishStrategy
}

// QuoteWords renders words as a comma separated list of quoted strings
func QuoteWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}

func markerInstruction(words []string) string {
	return fmt.Sprintf("(wrap in %s...%s): %s", MarkerOpen, MarkerClose, QuoteWords(words))
}

func normalize(prompt string) string {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n") + "\n"
}
