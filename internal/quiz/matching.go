package quiz

import (
	"fmt"
	"math/rand"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// DefaultPairCount is the number of pairs in a matching game
const DefaultPairCount = 10

// MatchingGame pairs words with their meanings. Words and Meanings are
// shuffled independently.
type MatchingGame struct {
	Words    []content.VocabularyItem
	Meanings []content.VocabularyItem
	matched  map[string]bool
	attempts int
}

// NewMatchingGame picks pairs random items from items
func NewMatchingGame(items []content.VocabularyItem, pairs int, rng *rand.Rand) (*MatchingGame, error) {
	if pairs <= 0 {
		pairs = DefaultPairCount
	}
	if len(items) < pairs {
		return nil, fmt.Errorf("%w: %d items for %d pairs", ErrInsufficientVocabulary, len(items), pairs)
	}
	chosen := shuffle(items, rng)[:pairs]
	return &MatchingGame{
		Words:    shuffle(chosen, rng),
		Meanings: shuffle(chosen, rng),
		matched:  make(map[string]bool, pairs),
	}, nil
}

// Match checks a selected word against the word behind a selected meaning
// and records the pair when both agree.
func (g *MatchingGame) Match(word, meaningWord string) bool {
	g.attempts++
	if word != meaningWord || g.matched[word] {
		return false
	}
	for _, item := range g.Words {
		if item.Word == word {
			g.matched[word] = true
			return true
		}
	}
	return false
}

// IsMatched reports whether the word was already paired
func (g *MatchingGame) IsMatched(word string) bool {
	return g.matched[word]
}

// Attempts returns how many matches were tried
func (g *MatchingGame) Attempts() int {
	return g.attempts
}

// Done reports whether every pair has been matched
func (g *MatchingGame) Done() bool {
	return len(g.matched) == len(g.Words)
}
