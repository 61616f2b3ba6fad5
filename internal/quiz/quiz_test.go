package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

func sampleItems(n int) []content.VocabularyItem {
	words := []string{"apple", "river", "mountain", "teacher", "window", "garden", "bridge", "summer", "letter", "doctor", "engine", "forest"}
	items := make([]content.VocabularyItem, 0, n)
	for i := 0; i < n; i++ {
		w := words[i]
		items = append(items, content.VocabularyItem{
			Word:         w,
			Meaning:      "nghĩa " + w,
			Example:      "The " + w + " is here.",
			ENDefinition: "definition of " + w,
			VIExample:    "ví dụ " + w,
			VIDefinition: "định nghĩa " + w,
		})
	}
	return items
}

func TestBuildQuiz(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	questions, err := BuildQuiz(sampleItems(8), ModeEnglishToVietnamese, 5, rng)
	require.NoError(t, err)
	require.Len(t, questions, 5)

	seen := map[string]bool{}
	for _, q := range questions {
		assert.False(t, seen[q.Correct.Word], "question repeated")
		seen[q.Correct.Word] = true

		require.Len(t, q.Options, OptionCount)
		words := map[string]bool{}
		correct := 0
		for i, opt := range q.Options {
			words[opt.Word] = true
			if q.IsCorrect(i) {
				correct++
			}
		}
		assert.Len(t, words, OptionCount, "options must be distinct")
		assert.Equal(t, 1, correct)
	}
}

func TestBuildQuizCountCapped(t *testing.T) {
	questions, err := BuildQuiz(sampleItems(4), ModeVietnameseToEnglish, 20, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Len(t, questions, 4)
}

func TestBuildQuizInsufficient(t *testing.T) {
	_, err := BuildQuiz(sampleItems(3), ModeEnglishToVietnamese, 5, nil)
	assert.ErrorIs(t, err, ErrInsufficientVocabulary)

	items := sampleItems(5)
	items[0].VIDefinition = ""
	items[1].VIDefinition = " "
	_, err = BuildQuiz(items, ModeVietnameseDefinition, 5, nil)
	assert.ErrorIs(t, err, ErrInsufficientVocabulary)

	questions, err := BuildQuiz(items, ModeEnglishDefinition, 5, nil)
	require.NoError(t, err)
	assert.Len(t, questions, 5)
}

func TestModePrompt(t *testing.T) {
	item := content.VocabularyItem{
		Word:         "River",
		Meaning:      "dòng sông",
		Example:      "The river flows past the river bank.",
		ENDefinition: "a natural stream of water",
		VIExample:    "Dòng sông chảy qua làng.",
		VIDefinition: "dòng nước tự nhiên",
	}

	tests := []struct {
		mode   Mode
		prompt string
		option string
	}{
		{ModeEnglishToVietnamese, "River", "dòng sông"},
		{ModeVietnameseToEnglish, "dòng sông", "River"},
		{ModeFillBlank, "The _______ flows past the river bank.", "River"},
		{ModeVietnamesePrompt, "Dòng sông chảy qua làng.", "River"},
		{ModeEnglishDefinition, "a natural stream of water", "River"},
		{ModeVietnameseDefinition, "dòng nước tự nhiên", "River"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.prompt, tt.mode.Prompt(item))
			assert.Equal(t, tt.option, tt.mode.OptionText(item))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" EN-Blank ")
	require.NoError(t, err)
	assert.Equal(t, ModeFillBlank, m)

	_, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestFeedbackAndScore(t *testing.T) {
	items := sampleItems(4)
	q := Question{Correct: items[0], Options: items}

	assert.Equal(t, "Chính xác!", q.Feedback(0))
	assert.Equal(t, `Sai rồi! Đáp án đúng là: "apple"`, q.Feedback(2))
	assert.False(t, q.IsCorrect(9))

	assert.Equal(t, 1, Score([]Question{q, q, q}, []int{0, 1}))
	assert.Equal(t, "Điểm của bạn: 1 / 3", ScoreLine(1, 3))
}
