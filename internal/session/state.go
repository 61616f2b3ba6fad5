package session

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// State is the complete state of a session. Zero ids mean "no active set";
// set ids are creation timestamps and never zero.
type State struct {
	Policy   StalenessPolicy
	Language content.Language

	SavedSets      []content.VocabularySet
	ActiveSetID    int64
	VocabularyList []content.VocabularyItem
	Topic          string
	Level          string

	SavedSuggestionSets []content.SpeakingSuggestionSet
	ActiveSuggestionID  int64
	Suggestions         []content.SpeakingSuggestion

	// Derived from the active set, never persisted
	Part1             []content.IeltsPart1Item
	Part2             *content.IeltsPart2Item
	PracticeQuestions []content.SpeakingQuestion
	Podcast           string
	Answers           map[string]string
	Feedback          map[string]string

	LastError string
	Requests  map[Operation]Request
}

// NewState returns the initial state
func NewState(policy StalenessPolicy) State {
	return State{
		Policy:   policy,
		Language: content.English,
		Topic:    "Personal Information",
		Level:    content.DefaultLevel(content.English),
		Answers:  map[string]string{},
		Feedback: map[string]string{},
		Requests: map[Operation]Request{},
	}
}

// FeedbackKey identifies an answer slot, e.g. question 2 of speaking practice
func FeedbackKey(op Operation, index int) string {
	return fmt.Sprintf("%s:%d", op, index)
}

// ActiveSet returns the active vocabulary set
func (s State) ActiveSet() (content.VocabularySet, bool) {
	if s.ActiveSetID == 0 {
		return content.VocabularySet{}, false
	}
	return store.FindVocabularySet(s.SavedSets, s.ActiveSetID)
}

// ActiveLanguage is the language of the active set, or the selected
// language when no set is active
func (s State) ActiveLanguage() content.Language {
	if set, ok := s.ActiveSet(); ok {
		return set.EffectiveLanguage()
	}
	return s.Language.OrDefault()
}

// CanStart reports whether op may be submitted. The same operation cannot
// run twice at once; different operations are independent.
func (s State) CanStart(op Operation) bool {
	return s.Requests[op].Status != StatusPending
}

// HasDerivedContent reports whether any content derived from the active set
// is present
func (s State) HasDerivedContent() bool {
	return len(s.Part1) > 0 || s.Part2 != nil || len(s.PracticeQuestions) > 0 ||
		s.Podcast != "" || len(s.Answers) > 0 || len(s.Feedback) > 0
}

// clone copies the maps so the reducer never mutates its input
func (s State) clone() State {
	c := s
	c.Answers = copyMap(s.Answers)
	c.Feedback = copyMap(s.Feedback)
	c.Requests = make(map[Operation]Request, len(s.Requests))
	for k, v := range s.Requests {
		c.Requests[k] = v
	}
	return c
}

func copyMap(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// clearAnswers drops the answers and feedback recorded for questions of op.
// Slots of other operations are kept.
func (s *State) clearAnswers(op Operation) {
	prefix := op.String() + ":"
	for key := range s.Answers {
		if strings.HasPrefix(key, prefix) {
			delete(s.Answers, key)
		}
	}
	for key := range s.Feedback {
		if strings.HasPrefix(key, prefix) {
			delete(s.Feedback, key)
		}
	}
}

func (s *State) clearDerived() {
	s.Part1 = nil
	s.Part2 = nil
	s.PracticeQuestions = nil
	s.Podcast = ""
	s.Answers = map[string]string{}
	s.Feedback = map[string]string{}
}
