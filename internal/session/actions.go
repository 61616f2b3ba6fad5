package session

import (
	"github.com/google/uuid"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// Action is an input to Reduce
type Action interface {
	isAction()
}

// Hydrate restores persisted collections at startup
type Hydrate struct {
	Sets               []content.VocabularySet
	ActiveSetID        int64
	SuggestionSets     []content.SpeakingSuggestionSet
	ActiveSuggestionID int64
}

// SelectLanguage changes the language used for the next generation
type SelectLanguage struct {
	Language content.Language
}

// RequestStarted marks op as pending under a new request id
type RequestStarted struct {
	Op Operation
	ID uuid.UUID
}

// RequestFailed records a failed request and the message shown to the user
type RequestFailed struct {
	Op      Operation
	ID      uuid.UUID
	Message string
}

// VocabularyGenerated adds a new set and makes it active
type VocabularyGenerated struct {
	ID  uuid.UUID
	Set content.VocabularySet
}

// SetLoaded makes a saved set active
type SetLoaded struct {
	SetID int64
}

// SetDeleted removes a saved set
type SetDeleted struct {
	SetID int64
}

// ExamplesGenerated attaches example sentences to a word of the active set
type ExamplesGenerated struct {
	ID       uuid.UUID
	Word     string
	Examples []content.ExampleSentencePair
}

// DerivedContentReady delivers content generated from the active set. Only
// the field matching Op is used.
type DerivedContentReady struct {
	Op       Operation
	ID       uuid.UUID
	Part1    []content.IeltsPart1Item
	Part2    *content.IeltsPart2Item
	Practice []content.SpeakingQuestion
	Podcast  string
}

// AnswerRecorded stores the learner's answer for a question slot
type AnswerRecorded struct {
	Key    string
	Answer string
}

// FeedbackReady stores AI feedback for a question slot
type FeedbackReady struct {
	Op       Operation
	ID       uuid.UUID
	Key      string
	Feedback string
}

// SuggestionSetSaved adds a suggestion set and makes it active
type SuggestionSetSaved struct {
	ID  uuid.UUID
	Set content.SpeakingSuggestionSet
}

// SuggestionSetLoaded makes a saved suggestion set active
type SuggestionSetLoaded struct {
	SetID int64
}

// SuggestionSetDeleted removes a saved suggestion set
type SuggestionSetDeleted struct {
	SetID int64
}

// ClearDerived drops all content derived from the active set
type ClearDerived struct{}

func (Hydrate) isAction()              {}
func (SelectLanguage) isAction()       {}
func (RequestStarted) isAction()       {}
func (RequestFailed) isAction()        {}
func (VocabularyGenerated) isAction()  {}
func (SetLoaded) isAction()            {}
func (SetDeleted) isAction()           {}
func (ExamplesGenerated) isAction()    {}
func (DerivedContentReady) isAction()  {}
func (AnswerRecorded) isAction()       {}
func (FeedbackReady) isAction()        {}
func (SuggestionSetSaved) isAction()   {}
func (SuggestionSetLoaded) isAction()  {}
func (SuggestionSetDeleted) isAction() {}
func (ClearDerived) isAction()         {}
