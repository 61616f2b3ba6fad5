package store

import "codeberg.org/snonux/vocabbuilder/internal/content"

// FindVocabularySet returns the set with id
func FindVocabularySet(sets []content.VocabularySet, id int64) (content.VocabularySet, bool) {
	for _, set := range sets {
		if set.ID == id {
			return set, true
		}
	}
	return content.VocabularySet{}, false
}

// FilterByLanguage returns the sets of lang. Sets without a language are
// English.
func FilterByLanguage(sets []content.VocabularySet, lang content.Language) []content.VocabularySet {
	lang = lang.OrDefault()
	filtered := []content.VocabularySet{}
	for _, set := range sets {
		if set.EffectiveLanguage() == lang {
			filtered = append(filtered, set)
		}
	}
	return filtered
}

// RemoveVocabularySet returns sets without the set with id
func RemoveVocabularySet(sets []content.VocabularySet, id int64) []content.VocabularySet {
	kept := make([]content.VocabularySet, 0, len(sets))
	for _, set := range sets {
		if set.ID != id {
			kept = append(kept, set)
		}
	}
	return kept
}

// ReplaceVocabularySet returns sets with the set of the same id replaced
func ReplaceVocabularySet(sets []content.VocabularySet, updated content.VocabularySet) []content.VocabularySet {
	out := make([]content.VocabularySet, len(sets))
	for i, set := range sets {
		if set.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = set
		}
	}
	return out
}

// FindSuggestionSet returns the suggestion set with id
func FindSuggestionSet(sets []content.SpeakingSuggestionSet, id int64) (content.SpeakingSuggestionSet, bool) {
	for _, set := range sets {
		if set.ID == id {
			return set, true
		}
	}
	return content.SpeakingSuggestionSet{}, false
}

// RemoveSuggestionSet returns sets without the set with id
func RemoveSuggestionSet(sets []content.SpeakingSuggestionSet, id int64) []content.SpeakingSuggestionSet {
	kept := make([]content.SpeakingSuggestionSet, 0, len(sets))
	for _, set := range sets {
		if set.ID != id {
			kept = append(kept, set)
		}
	}
	return kept
}
