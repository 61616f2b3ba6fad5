package quiz

import (
	"math/rand"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// SpellingWordCount caps the number of words in a drill
const SpellingWordCount = 10

// SpellingDrill plays a word aloud and asks the user to type it
type SpellingDrill struct {
	Items   []content.VocabularyItem
	current int
	correct int
}

// NewSpellingDrill picks up to SpellingWordCount random items
func NewSpellingDrill(items []content.VocabularyItem, rng *rand.Rand) *SpellingDrill {
	picked := shuffle(items, rng)
	if len(picked) > SpellingWordCount {
		picked = picked[:SpellingWordCount]
	}
	return &SpellingDrill{Items: picked}
}

// Current returns the item being asked, false when the drill is over
func (d *SpellingDrill) Current() (content.VocabularyItem, bool) {
	if d.current >= len(d.Items) {
		return content.VocabularyItem{}, false
	}
	return d.Items[d.current], true
}

// Check compares input with the current word ignoring case and surrounding
// whitespace, then moves to the next word.
func (d *SpellingDrill) Check(input string) bool {
	item, ok := d.Current()
	if !ok {
		return false
	}
	d.current++
	if strings.EqualFold(strings.TrimSpace(input), item.Word) {
		d.correct++
		return true
	}
	return false
}

// Score returns correct answers and words asked so far
func (d *SpellingDrill) Score() (correct, asked int) {
	return d.correct, d.current
}

// Done reports whether every word was asked
func (d *SpellingDrill) Done() bool {
	return d.current >= len(d.Items)
}
