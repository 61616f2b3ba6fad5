package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

func openDrivers(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	fileKV, err := Open("file", filepath.Join(dir, "state", "store.json"))
	require.NoError(t, err)
	sqliteKV, err := Open("sqlite", filepath.Join(dir, "state", "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func sampleSets() []content.VocabularySet {
	return []content.VocabularySet{
		{
			ID: 1700000000002, Language: content.Chinese, Topic: "家庭", Level: "HSK 1", Count: 1,
			VocabularyList: []content.VocabularyItem{{Word: "妈妈", IPA: "māma", Meaning: "mẹ"}},
		},
		{
			ID: 1700000000001, Language: content.English, Topic: "Family", Level: "B1", Count: 1,
			VocabularyList: []content.VocabularyItem{{
				Word: "aunt", Meaning: "cô",
				GeneratedExamples: []content.ExampleSentencePair{{En: "My aunt is here.", Vi: "Cô tôi ở đây."}},
			}},
		},
	}
}

func TestVocabularySetsRoundTrip(t *testing.T) {
	for name, kv := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv)

			empty, err := s.LoadVocabularySets()
			require.NoError(t, err)
			assert.Empty(t, empty)
			assert.NotNil(t, empty)

			require.NoError(t, s.SaveVocabularySets(sampleSets()))

			first, err := s.LoadVocabularySets()
			require.NoError(t, err)
			assert.Equal(t, sampleSets(), first)

			second, err := s.LoadVocabularySets()
			require.NoError(t, err)
			assert.Equal(t, first, second, "loading twice must be idempotent")
		})
	}
}

func TestSuggestionSetsRoundTrip(t *testing.T) {
	for name, kv := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv)
			sets := []content.SpeakingSuggestionSet{{
				ID: 42, Topic: "Travel", Level: "B2",
				Suggestions: []content.SpeakingSuggestion{{
					Category: "Hỏi đường",
					Phrases:  []content.PhrasePair{{En: "Excuse me, where is the station?", Vi: "Xin lỗi, ga ở đâu?"}},
				}},
			}}

			require.NoError(t, s.SaveSuggestionSets(sets))
			got, err := s.LoadSuggestionSets()
			require.NoError(t, err)
			assert.Equal(t, sets, got)

			require.NoError(t, s.SaveSuggestionSets(nil))
			got, err = s.LoadSuggestionSets()
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestActiveIDs(t *testing.T) {
	for name, kv := range openDrivers(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv)

			_, ok, err := s.LoadActiveID(Vocabulary)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SaveActiveID(Vocabulary, 1700000000001))
			require.NoError(t, s.SaveActiveID(Suggestions, 7))

			id, ok, err := s.LoadActiveID(Vocabulary)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, int64(1700000000001), id)

			id, ok, err = s.LoadActiveID(Suggestions)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, int64(7), id)

			require.NoError(t, s.ClearActiveID(Vocabulary))
			_, ok, err = s.LoadActiveID(Vocabulary)
			require.NoError(t, err)
			assert.False(t, ok)

			// Clearing twice is fine
			require.NoError(t, s.ClearActiveID(Vocabulary))
		})
	}
}

func TestCorruptValuesAreEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyVocabularySets, "{not json"))
	require.NoError(t, kv.Set(KeySuggestionSets, `{"id":1}`))
	require.NoError(t, kv.Set(KeyVocabularyActiveID, "abc"))
	s := New(kv)

	sets, err := s.LoadVocabularySets()
	require.NoError(t, err)
	assert.Empty(t, sets)

	suggestions, err := s.LoadSuggestionSets()
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	_, ok, err := s.LoadActiveID(Vocabulary)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPartlyDecodableCollectionIsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyVocabularySets, `[{"id":1,"topic":"Family","level":"B1"},{"id":"oops"}]`))
	require.NoError(t, kv.Set(KeySuggestionSets, `[{"id":2,"topic":"Travel"},{"suggestions":"none"}]`))
	s := New(kv)

	sets, err := s.LoadVocabularySets()
	require.NoError(t, err)
	assert.Empty(t, sets)

	suggestions, err := s.LoadSuggestionSets()
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestCorruptStoreFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vocabApp_savedSets": "[`), 0600))

	kv, err := Open("file", path)
	require.NoError(t, err)
	s := New(kv)

	sets, err := s.LoadVocabularySets()
	require.NoError(t, err)
	assert.Empty(t, sets)
	_, ok := s.LoadAPIKey()
	assert.False(t, ok)

	moved, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	data, err := os.ReadFile(moved[0])
	require.NoError(t, err)
	assert.Equal(t, `{"vocabApp_savedSets": "[`, string(data))

	// The next write replaces the corrupt document
	require.NoError(t, s.SaveVocabularySets(sampleSets()))
	reopened, err := Open("file", path)
	require.NoError(t, err)
	sets, err = New(reopened).LoadVocabularySets()
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestAPIKey(t *testing.T) {
	s := New(NewMemoryKV())

	_, ok := s.LoadAPIKey()
	assert.False(t, ok)

	assert.Error(t, s.SaveAPIKey("   "))
	require.NoError(t, s.SaveAPIKey("  AIza-test  "))

	key, ok := s.LoadAPIKey()
	assert.True(t, ok)
	assert.Equal(t, "AIza-test", key)

	raw, _, _ := s.KV().Get(KeyAPIKey)
	assert.Equal(t, "AIza-test", raw, "the key is stored raw, not JSON encoded")

	require.NoError(t, s.ClearAPIKey())
	_, ok = s.LoadAPIKey()
	assert.False(t, ok)
}

func TestLegacyDataWithoutLanguage(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyVocabularySets,
		`[{"id":1,"topic":"Family","level":"B1","count":1,"vocabularyList":[{"word":"aunt","meaning":"cô"}]}]`))
	s := New(kv)

	sets, err := s.LoadVocabularySets()
	require.NoError(t, err)
	require.Len(t, sets, 1)

	assert.Len(t, FilterByLanguage(sets, content.English), 1)
	assert.Empty(t, FilterByLanguage(sets, content.Chinese))
}

func TestFileKVPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("a", "1"))
	require.NoError(t, kv.Set("b", "2"))
	require.NoError(t, kv.Delete("a"))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)

	_, ok, _ := reopened.Get("a")
	assert.False(t, ok)
	v, ok, _ := reopened.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "x")
	assert.Error(t, err)
}
