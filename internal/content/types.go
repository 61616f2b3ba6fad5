package content

// ExampleSentencePair is one generated example sentence with its Vietnamese
// translation. For Chinese sets the "en" key holds the Chinese sentence.
type ExampleSentencePair struct {
	En string `json:"en" validate:"required"`
	Vi string `json:"vi" validate:"required"`
}

// VocabularyItem is a single generated word entry. The word is its identity
// within a set. For Chinese sets IPA holds Pinyin and ENDefinition holds the
// Chinese definition.
type VocabularyItem struct {
	Word              string                `json:"word" validate:"required"`
	POS               string                `json:"pos"`
	IPA               string                `json:"ipa"`
	Meaning           string                `json:"meaning" validate:"required"`
	Example           string                `json:"example"`
	ENDefinition      string                `json:"en_definition"`
	VIExample         string                `json:"vi_example"`
	VIExampleFull     string                `json:"vi_example_full"`
	VIDefinition      string                `json:"vi_definition"`
	GeneratedExamples []ExampleSentencePair `json:"generated_examples,omitempty"`
}

// VocabularySet is a persisted, generated vocabulary list. ID is the creation
// time in epoch milliseconds.
type VocabularySet struct {
	ID             int64            `json:"id"`
	Language       Language         `json:"language,omitempty"`
	Topic          string           `json:"topic"`
	Level          string           `json:"level"`
	Count          int              `json:"count"`
	VocabularyList []VocabularyItem `json:"vocabularyList"`
}

// EffectiveLanguage returns the set language, treating sets saved before
// language support as English.
func (s VocabularySet) EffectiveLanguage() Language {
	return s.Language.OrDefault()
}

// PhrasePair is a conversation phrase and its Vietnamese translation
type PhrasePair struct {
	En string `json:"en" validate:"required"`
	Vi string `json:"vi"`
}

// SpeakingSuggestion groups phrases under a (Vietnamese) category label
type SpeakingSuggestion struct {
	Category string       `json:"category" validate:"required"`
	Phrases  []PhrasePair `json:"phrases" validate:"dive"`
}

// SpeakingSuggestionSet is a persisted collection of speaking suggestions
type SpeakingSuggestionSet struct {
	ID          int64                `json:"id"`
	Topic       string               `json:"topic"`
	Level       string               `json:"level"`
	Suggestions []SpeakingSuggestion `json:"suggestions"`
}

// IeltsPart1Item is a speaking test question with a sample answer
type IeltsPart1Item struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// IeltsPart2Item is a cue card with a sample long-turn answer
type IeltsPart2Item struct {
	Topic   string   `json:"topic" validate:"required"`
	CueCard []string `json:"cue_card"`
	Answer  string   `json:"answer" validate:"required"`
}

// SpeakingQuestion is a practice question with words the learner should try to use
type SpeakingQuestion struct {
	Question       string   `json:"question" validate:"required"`
	SuggestedWords []string `json:"suggested_words"`
}

// Words returns the word of every item, in order
func Words(items []VocabularyItem) []string {
	words := make([]string, 0, len(items))
	for _, item := range items {
		words = append(words, item.Word)
	}
	return words
}

// WithExamples returns a copy of items where the item matching word carries
// the given generated examples. The input slice is not modified.
func WithExamples(items []VocabularyItem, word string, examples []ExampleSentencePair) []VocabularyItem {
	updated := make([]VocabularyItem, len(items))
	copy(updated, items)
	for i := range updated {
		if updated[i].Word == word {
			updated[i].GeneratedExamples = append([]ExampleSentencePair(nil), examples...)
		}
	}
	return updated
}

// FindItem returns the item with the given word
func FindItem(items []VocabularyItem, word string) (VocabularyItem, bool) {
	for _, item := range items {
		if item.Word == word {
			return item, true
		}
	}
	return VocabularyItem{}, false
}
