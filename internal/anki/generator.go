package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// Card represents a single Anki flashcard
type Card struct {
	Word       string // Front side
	Reading    string // IPA, or Pinyin for Chinese
	POS        string
	Meaning    string // Vietnamese meaning
	Example    string
	Definition string
	AudioFile  string // Path to audio file
	Tags       []string
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	MediaFolder    string // Folder audio files are written to
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		MediaFolder:    "collection.media",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// Options returns the export options
func (g *Generator) Options() *GeneratorOptions {
	return g.options
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// AddSet adds one card per vocabulary item. Cards are tagged with the set's
// language, level and topic.
func (g *Generator) AddSet(set content.VocabularySet) {
	tags := []string{
		tag(set.EffectiveLanguage().String()),
		tag(set.Level),
		tag(set.Topic),
	}
	for _, item := range set.VocabularyList {
		g.AddCard(Card{
			Word:       item.Word,
			Reading:    item.IPA,
			POS:        item.POS,
			Meaning:    item.Meaning,
			Example:    item.Example,
			Definition: item.ENDefinition,
			Tags:       tags,
		})
	}
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Reading", "POS", "Meaning", "Example", "Definition", "Audio", "Tags"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Word,
			card.Reading,
			card.POS,
			card.Meaning,
			card.Example,
			card.Definition,
			formatAudioField(card.AudioFile),
			strings.Join(card.Tags, " "),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// WriteAudio stores audio for the card at index in the media folder and
// links it to the card
func (g *Generator) WriteAudio(index int, filename string, data []byte) error {
	if index < 0 || index >= len(g.cards) {
		return fmt.Errorf("card index %d out of range", index)
	}
	if err := os.MkdirAll(g.options.MediaFolder, 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	path := filepath.Join(g.options.MediaFolder, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	g.cards[index].AudioFile = path
	return nil
}

// formatAudioField formats the audio file reference for Anki
func formatAudioField(audioFile string) string {
	if audioFile == "" {
		return ""
	}
	// Anki audio format: [sound:filename.wav]
	return fmt.Sprintf("[sound:%s]", filepath.Base(audioFile))
}

// tag turns a label into a single Anki tag
func tag(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withAudio int) {
	totalCards = len(g.cards)
	for _, card := range g.cards {
		if card.AudioFile != "" {
			withAudio++
		}
	}
	return
}
