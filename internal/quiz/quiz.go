package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// OptionCount is the number of choices offered for every question
const OptionCount = 4

// Blank replaces the target word in fill-in-the-blank prompts
const Blank = "_______"

// ErrInsufficientVocabulary is returned when a set has too few usable items
// for the requested game.
var ErrInsufficientVocabulary = errors.New("insufficient vocabulary")

// Mode selects what is shown as the question and what as the options
type Mode string

const (
	ModeEnglishToVietnamese  Mode = "en-vi"
	ModeVietnameseToEnglish  Mode = "vi-en"
	ModeFillBlank            Mode = "en-blank"
	ModeVietnamesePrompt     Mode = "vi-prompt"
	ModeEnglishDefinition    Mode = "en-def"
	ModeVietnameseDefinition Mode = "vi-def"
)

// Modes lists every quiz mode in menu order
var Modes = []Mode{
	ModeEnglishToVietnamese,
	ModeVietnameseToEnglish,
	ModeFillBlank,
	ModeVietnamesePrompt,
	ModeEnglishDefinition,
	ModeVietnameseDefinition,
}

// QuestionCounts are the question counts offered to the user
var QuestionCounts = []int{5, 10, 15, 20}

// ParseMode converts a user supplied mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == strings.ToLower(strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown quiz mode %q", s)
}

// field returns the item field a mode relies on
func (m Mode) field(item content.VocabularyItem) string {
	switch m {
	case ModeFillBlank:
		return item.Example
	case ModeVietnamesePrompt:
		return item.VIExample
	case ModeEnglishDefinition:
		return item.ENDefinition
	case ModeVietnameseDefinition:
		return item.VIDefinition
	default:
		return item.Word
	}
}

// Prompt renders the question text for an item
func (m Mode) Prompt(item content.VocabularyItem) string {
	switch m {
	case ModeEnglishToVietnamese:
		return item.Word
	case ModeVietnameseToEnglish:
		return item.Meaning
	case ModeFillBlank:
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(item.Word))
		if err != nil {
			return item.Example
		}
		replaced := false
		return re.ReplaceAllStringFunc(item.Example, func(match string) string {
			if replaced {
				return match
			}
			replaced = true
			return Blank
		})
	default:
		return m.field(item)
	}
}

// OptionText renders an answer option for an item
func (m Mode) OptionText(item content.VocabularyItem) string {
	if m == ModeEnglishToVietnamese {
		return item.Meaning
	}
	return item.Word
}

// Question is one multiple choice question
type Question struct {
	Correct content.VocabularyItem
	Options []content.VocabularyItem
}

// IsCorrect reports whether the option at index is the right answer
func (q Question) IsCorrect(index int) bool {
	if index < 0 || index >= len(q.Options) {
		return false
	}
	return q.Options[index].Word == q.Correct.Word
}

// Feedback returns the message shown after answering with the option at index
func (q Question) Feedback(index int) string {
	return Feedback(q.IsCorrect(index), q.Correct.Word)
}

// Feedback returns the message shown after an answer to word
func Feedback(correct bool, word string) string {
	if correct {
		return "Chính xác!"
	}
	return fmt.Sprintf("Sai rồi! Đáp án đúng là: %q", word)
}

// ScoreLine formats the final score
func ScoreLine(score, total int) string {
	return fmt.Sprintf("Điểm của bạn: %d / %d", score, total)
}

// BuildQuiz creates up to count questions from items. Items missing the
// field the mode needs are skipped.
func BuildQuiz(items []content.VocabularyItem, mode Mode, count int, rng *rand.Rand) ([]Question, error) {
	valid := make([]content.VocabularyItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(mode.field(item)) != "" {
			valid = append(valid, item)
		}
	}
	if len(valid) < OptionCount {
		return nil, fmt.Errorf("%w: %d usable items for mode %s", ErrInsufficientVocabulary, len(valid), mode)
	}

	shuffled := shuffle(valid, rng)
	if count <= 0 || count > len(shuffled) {
		count = len(shuffled)
	}

	questions := make([]Question, 0, count)
	for _, correct := range shuffled[:count] {
		others := make([]content.VocabularyItem, 0, len(valid)-1)
		for _, item := range valid {
			if item.Word != correct.Word {
				others = append(others, item)
			}
		}
		others = shuffle(others, rng)
		if len(others) < OptionCount-1 {
			return nil, fmt.Errorf("%w: duplicate words in set", ErrInsufficientVocabulary)
		}
		options := append([]content.VocabularyItem{correct}, others[:OptionCount-1]...)
		questions = append(questions, Question{Correct: correct, Options: shuffle(options, rng)})
	}
	return questions, nil
}

// Score counts the correctly answered questions. answers holds the selected
// option index per question; missing answers count as wrong.
func Score(questions []Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			score++
		}
	}
	return score
}

func shuffle[T any](in []T, rng *rand.Rand) []T {
	out := append([]T(nil), in...)
	if rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
