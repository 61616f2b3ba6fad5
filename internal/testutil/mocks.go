package testutil

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/gateway"
)

// ErrFakeBackend is returned by FakeBackend when told to fail
var ErrFakeBackend = errors.New("fake backend failure")

type textRule struct {
	contains string
	response string
	err      error
}

// FakeBackend is a scripted gateway.Backend. Text responses are chosen by
// the first rule whose substring occurs in the prompt, falling back to Text.
type FakeBackend struct {
	Text      string
	TextErr   error
	Speech    *gateway.Speech
	SpeechErr error

	mu          sync.Mutex
	rules       []textRule
	textCalls   []gateway.TextRequest
	speechCalls []gateway.SpeechRequest
}

// NewFakeBackend creates a backend answering every text request with text
func NewFakeBackend(text string) *FakeBackend {
	return &FakeBackend{Text: text}
}

// Respond registers response for prompts containing substr
func (f *FakeBackend) Respond(substr, response string) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, textRule{contains: substr, response: response})
	return f
}

// Fail registers err for prompts containing substr
func (f *FakeBackend) Fail(substr string, err error) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, textRule{contains: substr, err: err})
	return f
}

// GenerateText implements gateway.Backend
func (f *FakeBackend) GenerateText(ctx context.Context, req gateway.TextRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.textCalls = append(f.textCalls, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, rule := range f.rules {
		if strings.Contains(req.Prompt, rule.contains) {
			return rule.response, rule.err
		}
	}
	return f.Text, f.TextErr
}

// GenerateSpeech implements gateway.Backend
func (f *FakeBackend) GenerateSpeech(ctx context.Context, req gateway.SpeechRequest) (*gateway.Speech, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.speechCalls = append(f.speechCalls, req)
	if f.SpeechErr != nil {
		return nil, f.SpeechErr
	}
	return f.Speech, nil
}

// Name implements gateway.Backend
func (f *FakeBackend) Name() string {
	return "fake"
}

// TextCalls returns the text requests received so far
func (f *FakeBackend) TextCalls() []gateway.TextRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.TextRequest(nil), f.textCalls...)
}

// SpeechCalls returns the speech requests received so far
func (f *FakeBackend) SpeechCalls() []gateway.SpeechRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.SpeechRequest(nil), f.speechCalls...)
}

// Factory returns a gateway.BackendFactory that always yields f
func (f *FakeBackend) Factory() gateway.BackendFactory {
	return func(string) (gateway.Backend, error) {
		return f, nil
	}
}

// StaticKeys is a gateway.KeyStore holding a fixed key
type StaticKeys string

// LoadAPIKey implements gateway.KeyStore
func (k StaticKeys) LoadAPIKey() (string, bool) {
	return string(k), k != ""
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// VocabularyItems returns n complete English vocabulary items
func (g *TestDataGenerator) VocabularyItems(n int) []content.VocabularyItem {
	items := make([]content.VocabularyItem, n)
	for i := range items {
		word := fmt.Sprintf("word%d", i+1)
		items[i] = content.VocabularyItem{
			Word:          word,
			POS:           "noun",
			IPA:           "/wɜːd/",
			Meaning:       fmt.Sprintf("nghĩa %d", i+1),
			Example:       fmt.Sprintf("This is %s in a sentence.", word),
			ENDefinition:  fmt.Sprintf("definition of %s", word),
			VIExample:     "Đây là _______ trong câu.",
			VIExampleFull: fmt.Sprintf("Đây là nghĩa %d trong câu.", i+1),
			VIDefinition:  fmt.Sprintf("định nghĩa %d", i+1),
		}
	}
	return items
}

// VocabularyJSON returns n vocabulary items encoded as a JSON array
func (g *TestDataGenerator) VocabularyJSON(n int) string {
	data, err := json.Marshal(g.VocabularyItems(n))
	if err != nil {
		panic(err)
	}
	return string(data)
}

// PCMSpeech returns a speech payload of n silent samples at rate
func (g *TestDataGenerator) PCMSpeech(n, rate int) *gateway.Speech {
	return &gateway.Speech{
		AudioData: base64.StdEncoding.EncodeToString(make([]byte, n*2)),
		MIMEType:  fmt.Sprintf("audio/L16;codec=pcm;rate=%d", rate),
	}
}
