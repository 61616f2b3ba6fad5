package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/session"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// Defaults for derived content
const (
	DefaultPodcastLength  = 250
	DefaultPart1Questions = 5
	DefaultPracticeCount  = 5
)

// GeneratePodcast writes a podcast script around the active set
func (p *Processor) GeneratePodcast(ctx context.Context, length int) (string, error) {
	set, err := requireActiveSet(p.State())
	if err != nil {
		return "", err
	}
	if length <= 0 {
		length = DefaultPodcastLength
	}

	id, _, err := p.start(session.OpPodcast)
	if err != nil {
		return "", err
	}
	script, err := p.gateway.GeneratePodcast(ctx, set.EffectiveLanguage(), set.Topic, length, content.Words(set.VocabularyList))
	if err != nil {
		return "", p.fail(session.OpPodcast, id, msgPodcastFailed, err)
	}
	p.dispatch(session.DerivedContentReady{Op: session.OpPodcast, ID: id, Podcast: script})
	return script, nil
}

// GenerateIeltsPart1 creates IELTS part 1 questions with model answers
func (p *Processor) GenerateIeltsPart1(ctx context.Context, count int) ([]content.IeltsPart1Item, error) {
	set, err := requireActiveSet(p.State())
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultPart1Questions
	}

	id, _, err := p.start(session.OpPart1)
	if err != nil {
		return nil, err
	}
	items, err := p.gateway.GenerateTestPart1(ctx, set.EffectiveLanguage(), set.Topic, count, content.Words(set.VocabularyList), set.Level)
	if err != nil {
		return nil, p.fail(session.OpPart1, id, msgContentFailed, err)
	}
	p.dispatch(session.DerivedContentReady{Op: session.OpPart1, ID: id, Part1: items})
	return items, nil
}

// GenerateIeltsPart2 creates an IELTS part 2 cue card with a model answer
func (p *Processor) GenerateIeltsPart2(ctx context.Context) (*content.IeltsPart2Item, error) {
	set, err := requireActiveSet(p.State())
	if err != nil {
		return nil, err
	}

	id, _, err := p.start(session.OpPart2)
	if err != nil {
		return nil, err
	}
	item, err := p.gateway.GenerateTestPart2(ctx, set.EffectiveLanguage(), set.Topic, content.Words(set.VocabularyList), set.Level)
	if err != nil {
		return nil, p.fail(session.OpPart2, id, msgContentFailed, err)
	}
	p.dispatch(session.DerivedContentReady{Op: session.OpPart2, ID: id, Part2: item})
	return item, nil
}

// EvaluateIelts grades the learner's answer to part 1 question index, or to
// the part 2 cue card when part is 2
func (p *Processor) EvaluateIelts(ctx context.Context, part, index int, answer string) (string, error) {
	state := p.State()
	set, err := requireActiveSet(state)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", userError(msgEmptyAnswer, errors.New("empty answer"))
	}

	var question string
	var key string
	switch part {
	case 1:
		if index < 0 || index >= len(state.Part1) {
			return "", fmt.Errorf("no part 1 question %d", index+1)
		}
		question = state.Part1[index].Question
		key = session.FeedbackKey(session.OpPart1, index)
	case 2:
		if state.Part2 == nil {
			return "", errors.New("no part 2 cue card generated")
		}
		question = state.Part2.Topic
		key = session.FeedbackKey(session.OpPart2, 0)
	default:
		return "", fmt.Errorf("invalid IELTS part %d", part)
	}

	p.dispatch(session.AnswerRecorded{Key: key, Answer: answer})
	id, _, err := p.start(session.OpEvaluation)
	if err != nil {
		return "", err
	}
	feedback, err := p.gateway.EvaluateSpeaking(ctx, set.EffectiveLanguage(), part, set.Topic, set.Level, question, answer)
	if err != nil {
		return "", p.fail(session.OpEvaluation, id, msgEvaluationFailed, err)
	}
	p.dispatch(session.FeedbackReady{Op: session.OpEvaluation, ID: id, Key: key, Feedback: feedback})
	return feedback, nil
}

// GenerateSpeakingPractice creates open questions that reuse the active words
func (p *Processor) GenerateSpeakingPractice(ctx context.Context, count int) ([]content.SpeakingQuestion, error) {
	set, err := requireActiveSet(p.State())
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultPracticeCount
	}

	id, _, err := p.start(session.OpPractice)
	if err != nil {
		return nil, err
	}
	questions, err := p.gateway.GenerateSpeakingPractice(ctx, set.EffectiveLanguage(), set.Topic, content.Words(set.VocabularyList), count, set.Level)
	if err != nil {
		return nil, p.fail(session.OpPractice, id, msgPracticeFailed, err)
	}
	p.dispatch(session.DerivedContentReady{Op: session.OpPractice, ID: id, Practice: questions})
	return questions, nil
}

// CheckSpeakingAnswer gives feedback on the answer to practice question index
func (p *Processor) CheckSpeakingAnswer(ctx context.Context, index int, answer string) (string, error) {
	state := p.State()
	set, err := requireActiveSet(state)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(state.PracticeQuestions) {
		return "", fmt.Errorf("no practice question %d", index+1)
	}
	if strings.TrimSpace(answer) == "" {
		return "", userError(msgEmptyAnswer, errors.New("empty answer"))
	}

	key := session.FeedbackKey(session.OpPractice, index)
	p.dispatch(session.AnswerRecorded{Key: key, Answer: answer})
	id, _, err := p.start(session.OpSpeakingCheck)
	if err != nil {
		return "", err
	}
	feedback, err := p.gateway.CheckSpeakingAnswer(ctx, set.EffectiveLanguage(), state.PracticeQuestions[index].Question, answer)
	if err != nil {
		return "", p.fail(session.OpSpeakingCheck, id, msgCheckFailed, err)
	}
	p.dispatch(session.FeedbackReady{Op: session.OpSpeakingCheck, ID: id, Key: key, Feedback: feedback})
	return feedback, nil
}

// GenerateSuggestions creates and saves a set of conversation phrases. An
// empty topic or level falls back to the active vocabulary set.
func (p *Processor) GenerateSuggestions(ctx context.Context, topic, level string) (content.SpeakingSuggestionSet, error) {
	state := p.State()
	if topic == "" {
		topic = state.Topic
	}
	if level == "" {
		level = state.Level
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return content.SpeakingSuggestionSet{}, userError(msgNoTopic, errors.New("empty topic"))
	}

	id, _, err := p.start(session.OpSuggestions)
	if err != nil {
		return content.SpeakingSuggestionSet{}, err
	}
	suggestions, err := p.gateway.GenerateSpeakingSuggestions(ctx, state.ActiveLanguage(), topic, level)
	if err != nil {
		return content.SpeakingSuggestionSet{}, p.fail(session.OpSuggestions, id, msgSuggestionsFailed, err)
	}

	set := content.SpeakingSuggestionSet{
		ID:          p.nextSetID(),
		Topic:       topic,
		Level:       level,
		Suggestions: suggestions,
	}
	next := p.dispatch(session.SuggestionSetSaved{ID: id, Set: set})
	if next.ActiveSuggestionID != set.ID {
		return set, nil
	}
	if err := p.store.SaveSuggestionSets(next.SavedSuggestionSets); err != nil {
		return set, err
	}
	if err := p.store.SaveActiveID(store.Suggestions, set.ID); err != nil {
		return set, err
	}
	return set, nil
}

// LoadSuggestionSet makes a saved suggestion set active
func (p *Processor) LoadSuggestionSet(id int64) (content.SpeakingSuggestionSet, error) {
	set, ok := store.FindSuggestionSet(p.State().SavedSuggestionSets, id)
	if !ok {
		return content.SpeakingSuggestionSet{}, fmt.Errorf("suggestion set %d: %w", id, ErrSetNotFound)
	}
	p.dispatch(session.SuggestionSetLoaded{SetID: id})
	if err := p.store.SaveActiveID(store.Suggestions, id); err != nil {
		return set, err
	}
	return set, nil
}

// DeleteSuggestionSet removes a saved suggestion set
func (p *Processor) DeleteSuggestionSet(id int64) error {
	before := p.State()
	if _, ok := store.FindSuggestionSet(before.SavedSuggestionSets, id); !ok {
		return fmt.Errorf("suggestion set %d: %w", id, ErrSetNotFound)
	}

	state := p.dispatch(session.SuggestionSetDeleted{SetID: id})
	if err := p.store.SaveSuggestionSets(state.SavedSuggestionSets); err != nil {
		return err
	}
	if before.ActiveSuggestionID == id {
		return p.store.ClearActiveID(store.Suggestions)
	}
	return nil
}
