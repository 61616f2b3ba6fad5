package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/vocabbuilder/internal"
	"codeberg.org/snonux/vocabbuilder/internal/anki"
	"codeberg.org/snonux/vocabbuilder/internal/audio"
	"codeberg.org/snonux/vocabbuilder/internal/batch"
	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/session"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// DefaultCount is the number of words generated when none is given
const DefaultCount = 10

// GenerateVocabulary asks the AI for a new vocabulary set, makes it the
// active set and persists it
func (p *Processor) GenerateVocabulary(ctx context.Context, lang content.Language, topic, level string, count int) (content.VocabularySet, error) {
	lang = lang.OrDefault()
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return content.VocabularySet{}, userError(msgNoTopic, errors.New("empty topic"))
	}
	if level == "" {
		level = content.DefaultLevel(lang)
	}
	if !content.IsValidLevel(lang, level) {
		return content.VocabularySet{}, fmt.Errorf("invalid level %q for %s", level, lang)
	}
	if count <= 0 {
		count = DefaultCount
	}

	p.SelectLanguage(lang)
	id, _, err := p.start(session.OpVocabulary)
	if err != nil {
		return content.VocabularySet{}, err
	}

	p.logger.Info("Generating vocabulary", "language", lang, "topic", topic, "level", level, "count", count)
	items, err := p.gateway.GenerateVocabulary(ctx, lang, topic, level, count)
	if err != nil {
		return content.VocabularySet{}, p.fail(session.OpVocabulary, id, msgVocabularyFailed, err)
	}

	set := content.VocabularySet{
		ID:             p.nextSetID(),
		Language:       lang,
		Topic:          topic,
		Level:          level,
		Count:          count,
		VocabularyList: items,
	}
	state := p.dispatch(session.VocabularyGenerated{ID: id, Set: set})
	if state.ActiveSetID != set.ID {
		p.logger.Info("Discarded stale vocabulary result", "topic", topic)
		return set, nil
	}

	if err := p.persistVocabulary(state); err != nil {
		return set, err
	}
	return set, nil
}

// LoadSet makes a saved vocabulary set active
func (p *Processor) LoadSet(id int64) (content.VocabularySet, error) {
	set, ok := store.FindVocabularySet(p.State().SavedSets, id)
	if !ok {
		return content.VocabularySet{}, fmt.Errorf("vocabulary set %d: %w", id, ErrSetNotFound)
	}
	p.dispatch(session.SetLoaded{SetID: id})
	if err := p.store.SaveActiveID(store.Vocabulary, id); err != nil {
		return set, err
	}
	return set, nil
}

// DeleteSet removes a saved vocabulary set. Deleting the active set also
// clears the current list and everything derived from it.
func (p *Processor) DeleteSet(id int64) error {
	before := p.State()
	if _, ok := store.FindVocabularySet(before.SavedSets, id); !ok {
		return fmt.Errorf("vocabulary set %d: %w", id, ErrSetNotFound)
	}

	state := p.dispatch(session.SetDeleted{SetID: id})
	if err := p.store.SaveVocabularySets(state.SavedSets); err != nil {
		return err
	}
	if before.ActiveSetID == id {
		return p.store.ClearActiveID(store.Vocabulary)
	}
	return nil
}

// ListSets returns the saved sets of lang in creation order
func (p *Processor) ListSets(lang content.Language) []content.VocabularySet {
	return store.FilterByLanguage(p.State().SavedSets, lang)
}

// ActiveSet returns the active vocabulary set
func (p *Processor) ActiveSet() (content.VocabularySet, error) {
	return requireActiveSet(p.State())
}

// GenerateExamples generates example sentences for a word of the active set
// and stores them with the word
func (p *Processor) GenerateExamples(ctx context.Context, word string) ([]content.ExampleSentencePair, error) {
	set, err := requireActiveSet(p.State())
	if err != nil {
		return nil, err
	}
	item, ok := content.FindItem(set.VocabularyList, word)
	if !ok {
		return nil, fmt.Errorf("word %q is not in the active set", word)
	}

	id, _, err := p.start(session.OpExamples)
	if err != nil {
		return nil, err
	}
	examples, err := p.gateway.GenerateExampleSentences(ctx, set.EffectiveLanguage(), item.Word, set.Level)
	if err != nil {
		return nil, p.fail(session.OpExamples, id, fmt.Sprintf(msgExamplesFailed, item.Word), err)
	}

	state := p.dispatch(session.ExamplesGenerated{ID: id, Word: item.Word, Examples: examples})
	if err := p.store.SaveVocabularySets(state.SavedSets); err != nil {
		return examples, err
	}
	return examples, nil
}

// ProcessBatch generates one vocabulary set per line of a topic file.
// Failed topics are reported and skipped.
func (p *Processor) ProcessBatch(ctx context.Context, filename string, lang content.Language) error {
	entries, err := batch.ReadBatchFile(filename)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Topic)

		set, err := p.GenerateVocabulary(ctx, lang, entry.Topic, entry.Level, entry.Count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing line %d '%s': %v\n", entry.Line, entry.Topic, err)
			errorCount++
			continue
		}
		p.printf("  ✓ %d words (%s, %s)\n", len(set.VocabularyList), set.Level, set.EffectiveLanguage())
		processedCount++
	}

	p.printf("\n=== Batch Processing Summary ===\n")
	p.printf("Total topics: %d\n", len(entries))
	p.printf("Processed: %d\n", processedCount)
	if errorCount > 0 {
		p.printf("Errors: %d\n", errorCount)
	}
	p.printf("================================\n")

	if errorCount > 0 && processedCount == 0 {
		return fmt.Errorf("all %d topics failed", errorCount)
	}
	return nil
}

// exportWorkers bounds concurrent speech requests during an Anki export
const exportWorkers = 3

// ExportOptions configures ExportAnki
type ExportOptions struct {
	SetID     int64 // 0 exports the active set
	Output    string
	WithAudio bool
}

// ExportAnki writes a vocabulary set as an Anki CSV file. With audio enabled
// each word is synthesized with the AI voice into a media folder next to the
// CSV file; words whose audio fails are exported without it.
func (p *Processor) ExportAnki(ctx context.Context, opts ExportOptions) error {
	state := p.State()
	var set content.VocabularySet
	if opts.SetID == 0 {
		active, err := requireActiveSet(state)
		if err != nil {
			return err
		}
		set = active
	} else {
		found, ok := store.FindVocabularySet(state.SavedSets, opts.SetID)
		if !ok {
			return fmt.Errorf("vocabulary set %d: %w", opts.SetID, ErrSetNotFound)
		}
		set = found
	}

	if opts.Output == "" {
		opts.Output = fmt.Sprintf("%s_%s.csv", internal.SanitizeFilename(set.Topic), internal.SanitizeFilename(set.Level))
	}
	if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     opts.Output,
		MediaFolder:    filepath.Join(filepath.Dir(opts.Output), "collection.media"),
		IncludeHeaders: true,
	})
	gen.AddSet(set)

	if opts.WithAudio {
		cards := gen.GetCards()
		wavs := make([][]byte, len(cards))

		var g errgroup.Group
		g.SetLimit(exportWorkers)
		for i, card := range cards {
			g.Go(func() error {
				speech, err := p.gateway.GenerateSpeech(ctx, card.Word)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error generating audio for '%s': %v\n", card.Word, err)
					return nil
				}
				wav, err := audio.WAVFromSpeech(speech.AudioData, speech.MIMEType)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error decoding audio for '%s': %v\n", card.Word, err)
					return nil
				}
				wavs[i] = wav
				return nil
			})
		}
		g.Wait()

		for i, wav := range wavs {
			if wav == nil {
				continue
			}
			if err := gen.WriteAudio(i, internal.SanitizeFilename(cards[i].Word)+".wav", wav); err != nil {
				return err
			}
		}
	}

	if err := gen.GenerateCSV(); err != nil {
		return err
	}

	total, withAudio := gen.Stats()
	p.printf("Anki export: %s (%d cards, %d with audio)\n", opts.Output, total, withAudio)
	return nil
}

// persistVocabulary writes the vocabulary collection and active id of state
func (p *Processor) persistVocabulary(state session.State) error {
	if err := p.store.SaveVocabularySets(state.SavedSets); err != nil {
		return err
	}
	if state.ActiveSetID == 0 {
		return p.store.ClearActiveID(store.Vocabulary)
	}
	return p.store.SaveActiveID(store.Vocabulary, state.ActiveSetID)
}
