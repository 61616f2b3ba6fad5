package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// Storage keys. They are shared with data written by earlier versions and
// must not change.
const (
	KeyVocabularySets     = "vocabApp_savedSets"
	KeyVocabularyActiveID = "vocabApp_activeSetId"
	KeySuggestionSets     = "speakingSuggestions_savedSets"
	KeySuggestionActiveID = "speakingSuggestions_activeSetId"
	KeyAPIKey             = "gemini_api_key"
)

// Bucket identifies one of the two persisted collections
type Bucket int

const (
	Vocabulary Bucket = iota
	Suggestions
)

// String returns the bucket name
func (b Bucket) String() string {
	switch b {
	case Vocabulary:
		return "vocabulary"
	case Suggestions:
		return "suggestions"
	default:
		return "unknown"
	}
}

func (b Bucket) activeKey() string {
	if b == Suggestions {
		return KeySuggestionActiveID
	}
	return KeyVocabularyActiveID
}

// Store reads and writes vocabbuilder's persisted state
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New creates a store on top of kv
func New(kv KV) *Store {
	return &Store{kv: kv, logger: slog.Default()}
}

// KV returns the underlying key-value store
func (s *Store) KV() KV {
	return s.kv
}

// Close closes the underlying key-value store
func (s *Store) Close() error {
	return s.kv.Close()
}

// LoadVocabularySets returns all saved vocabulary sets in creation order
func (s *Store) LoadVocabularySets() ([]content.VocabularySet, error) {
	sets, err := loadJSON[[]content.VocabularySet](s, KeyVocabularySets)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []content.VocabularySet{}
	}
	return sets, nil
}

// SaveVocabularySets replaces the saved vocabulary sets
func (s *Store) SaveVocabularySets(sets []content.VocabularySet) error {
	if sets == nil {
		sets = []content.VocabularySet{}
	}
	return s.saveJSON(KeyVocabularySets, sets)
}

// LoadSuggestionSets returns all saved speaking suggestion sets
func (s *Store) LoadSuggestionSets() ([]content.SpeakingSuggestionSet, error) {
	sets, err := loadJSON[[]content.SpeakingSuggestionSet](s, KeySuggestionSets)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []content.SpeakingSuggestionSet{}
	}
	return sets, nil
}

// SaveSuggestionSets replaces the saved speaking suggestion sets
func (s *Store) SaveSuggestionSets(sets []content.SpeakingSuggestionSet) error {
	if sets == nil {
		sets = []content.SpeakingSuggestionSet{}
	}
	return s.saveJSON(KeySuggestionSets, sets)
}

// LoadActiveID returns the active set id of bucket. A missing or corrupt
// value yields ok == false.
func (s *Store) LoadActiveID(bucket Bucket) (id int64, ok bool, err error) {
	raw, found, err := s.kv.Get(bucket.activeKey())
	if err != nil || !found {
		return 0, false, err
	}

	id, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if perr != nil {
		s.logger.Warn("ignoring corrupt active set id", "bucket", bucket.String(), "value", raw)
		return 0, false, nil
	}
	return id, true, nil
}

// SaveActiveID marks id as the active set of bucket
func (s *Store) SaveActiveID(bucket Bucket, id int64) error {
	return s.kv.Set(bucket.activeKey(), strconv.FormatInt(id, 10))
}

// ClearActiveID removes the active set of bucket
func (s *Store) ClearActiveID(bucket Bucket) error {
	return s.kv.Delete(bucket.activeKey())
}

// LoadAPIKey returns the stored API key. It implements gateway.KeyStore.
func (s *Store) LoadAPIKey() (string, bool) {
	key, ok, err := s.kv.Get(KeyAPIKey)
	if err != nil {
		s.logger.Error("failed to read stored API key", "error", err)
		return "", false
	}
	return key, ok && key != ""
}

// SaveAPIKey stores the API key as entered by the user
func (s *Store) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	return s.kv.Set(KeyAPIKey, key)
}

// ClearAPIKey removes the stored API key
func (s *Store) ClearAPIKey() error {
	return s.kv.Delete(KeyAPIKey)
}

// loadJSON decodes the value at key. A corrupt value is logged and yields
// the zero value, never a partial decode.
func loadJSON[T any](s *Store, key string) (T, error) {
	var zero T
	raw, found, err := s.kv.Get(key)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return zero, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Error("ignoring corrupt stored collection", "key", key, "error", err)
		return zero, nil
	}
	return v, nil
}

func (s *Store) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
