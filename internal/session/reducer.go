package session

import (
	"github.com/google/uuid"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// Reduce returns the state that follows s after action. s is not modified.
func Reduce(s State, action Action) State {
	next := s.clone()

	switch a := action.(type) {
	case Hydrate:
		next.SavedSets = a.Sets
		next.SavedSuggestionSets = a.SuggestionSets
		next.ActiveSetID = 0
		next.ActiveSuggestionID = 0
		next.Suggestions = nil
		if a.ActiveSetID != 0 {
			next.activateSet(a.ActiveSetID)
		}
		if a.ActiveSuggestionID != 0 {
			next.activateSuggestionSet(a.ActiveSuggestionID)
		}

	case SelectLanguage:
		next.Language = a.Language.OrDefault()

	case RequestStarted:
		next.Requests[a.Op] = Request{
			ID:        a.ID,
			Status:    StatusPending,
			BaseSetID: next.ActiveSetID,
		}
		next.LastError = ""

	case RequestFailed:
		req := next.Requests[a.Op]
		if req.ID != a.ID {
			if next.Policy == DropStale {
				return s
			}
			next.LastError = a.Message
			break
		}
		req.Status = StatusFailed
		req.Err = a.Message
		next.Requests[a.Op] = req
		next.LastError = a.Message

	case VocabularyGenerated:
		if !next.accept(OpVocabulary, a.ID) {
			return next
		}
		next.SavedSets = append(append([]content.VocabularySet(nil), next.SavedSets...), a.Set)
		next.ActiveSetID = a.Set.ID
		next.VocabularyList = a.Set.VocabularyList
		next.Topic = a.Set.Topic
		next.Level = a.Set.Level
		next.Language = a.Set.EffectiveLanguage()
		next.clearDerived()

	case SetLoaded:
		if !next.activateSet(a.SetID) {
			return s
		}
		next.clearDerived()

	case SetDeleted:
		next.SavedSets = store.RemoveVocabularySet(next.SavedSets, a.SetID)
		if next.ActiveSetID == a.SetID {
			next.ActiveSetID = 0
			next.VocabularyList = nil
			next.clearDerived()
		}

	case ExamplesGenerated:
		if !next.accept(OpExamples, a.ID) {
			return next
		}
		next.VocabularyList = content.WithExamples(next.VocabularyList, a.Word, a.Examples)
		if next.ActiveSetID != 0 {
			sets := make([]content.VocabularySet, len(next.SavedSets))
			for i, set := range next.SavedSets {
				if set.ID == next.ActiveSetID {
					set.VocabularyList = next.VocabularyList
				}
				sets[i] = set
			}
			next.SavedSets = sets
		}

	case DerivedContentReady:
		if !next.accept(a.Op, a.ID) {
			return next
		}
		switch a.Op {
		case OpPart1:
			next.Part1 = a.Part1
			next.clearAnswers(OpPart1)
		case OpPart2:
			next.Part2 = a.Part2
			next.clearAnswers(OpPart2)
		case OpPractice:
			next.PracticeQuestions = a.Practice
			next.clearAnswers(OpPractice)
		case OpPodcast:
			next.Podcast = a.Podcast
		}

	case AnswerRecorded:
		next.Answers[a.Key] = a.Answer

	case FeedbackReady:
		if !next.accept(a.Op, a.ID) {
			return next
		}
		next.Feedback[a.Key] = a.Feedback

	case SuggestionSetSaved:
		if !next.accept(OpSuggestions, a.ID) {
			return next
		}
		next.SavedSuggestionSets = append(append([]content.SpeakingSuggestionSet(nil), next.SavedSuggestionSets...), a.Set)
		next.ActiveSuggestionID = a.Set.ID
		next.Suggestions = a.Set.Suggestions

	case SuggestionSetLoaded:
		if !next.activateSuggestionSet(a.SetID) {
			return s
		}

	case SuggestionSetDeleted:
		next.SavedSuggestionSets = store.RemoveSuggestionSet(next.SavedSuggestionSets, a.SetID)
		if next.ActiveSuggestionID == a.SetID {
			next.ActiveSuggestionID = 0
			next.Suggestions = nil
		}

	case ClearDerived:
		next.clearDerived()
	}

	return next
}

// accept marks the request of op as succeeded and reports whether its
// response should be applied
func (s *State) accept(op Operation, id uuid.UUID) bool {
	req, known := s.Requests[op]
	current := known && req.ID == id
	stale := !current || (op.dependsOnActiveSet() && req.BaseSetID != s.ActiveSetID)

	if stale && s.Policy == DropStale {
		if current {
			req.Status = StatusIdle
			s.Requests[op] = req
		}
		return false
	}
	if current {
		req.Status = StatusSucceeded
		req.Err = ""
		s.Requests[op] = req
	}
	return true
}

// activateSet makes the saved set with id active and restores its view
// state. It returns false when no saved set has id.
func (s *State) activateSet(id int64) bool {
	set, ok := store.FindVocabularySet(s.SavedSets, id)
	if !ok {
		return false
	}
	s.ActiveSetID = set.ID
	s.VocabularyList = set.VocabularyList
	s.Topic = set.Topic
	s.Level = set.Level
	s.Language = set.EffectiveLanguage()
	return true
}

func (s *State) activateSuggestionSet(id int64) bool {
	set, ok := store.FindSuggestionSet(s.SavedSuggestionSets, id)
	if !ok {
		return false
	}
	s.ActiveSuggestionID = set.ID
	s.Suggestions = set.Suggestions
	return true
}
