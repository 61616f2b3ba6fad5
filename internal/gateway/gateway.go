package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"codeberg.org/snonux/vocabbuilder/internal/audio"
	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/prompt"
)

// ErrNoResult is returned when a request produced no usable result. The
// cause has already been logged.
var ErrNoResult = errors.New("no result from AI backend")

// Gateway issues AI requests for one configured provider
type Gateway struct {
	config      *Config
	credentials *CredentialSource
	factory     BackendFactory
	breaker     *breaker
	logger      *slog.Logger

	mu         sync.Mutex
	backend    Backend
	backendKey string
}

// Option configures a Gateway
type Option func(*Gateway)

// WithBackendFactory replaces the backend constructor
func WithBackendFactory(factory BackendFactory) Option {
	return func(g *Gateway) {
		g.factory = factory
	}
}

// WithLogger sets the logger used for failure reports
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New creates a gateway
func New(config *Config, credentials *CredentialSource, opts ...Option) *Gateway {
	if config == nil {
		config = DefaultConfig()
	}

	g := &Gateway{
		config:      config,
		credentials: credentials,
		logger:      slog.Default(),
	}
	g.factory = Factory(config)
	for _, opt := range opts {
		opt(g)
	}
	g.breaker = newBreaker("ai-"+config.Provider, config.BreakerMaxFailures, config.BreakerTimeout, g.logger)

	return g
}

// Config returns the gateway configuration
func (g *Gateway) Config() *Config {
	return g.config
}

// BreakerState returns the circuit breaker state ("closed", "open",
// "half-open" or "disabled")
func (g *Gateway) BreakerState() string {
	return g.breaker.state()
}

// HasEnvironmentKey reports whether an API key comes from the environment
func (g *Gateway) HasEnvironmentKey() bool {
	return g.credentials.HasEnvironmentKey()
}

// GenerateVocabulary returns count vocabulary items for topic at level
func (g *Gateway) GenerateVocabulary(ctx context.Context, lang content.Language, topic, level string, count int) ([]content.VocabularyItem, error) {
	p := prompt.GetStrategy(lang).Vocabulary(topic, level, count)
	temperature := g.config.Temperature

	raw, err := g.text(ctx, "vocabulary", p, &temperature, true)
	if err != nil {
		return nil, err
	}

	items, err := parseArray[content.VocabularyItem](raw)
	if err != nil {
		return nil, g.noResult("vocabulary", err)
	}
	return items, nil
}

// GeneratePodcast returns a podcast script of about length words that reuses words
func (g *Gateway) GeneratePodcast(ctx context.Context, lang content.Language, topic string, length int, words []string) (string, error) {
	return g.prose(ctx, "podcast", prompt.GetStrategy(lang).Podcast(topic, length, words))
}

// GenerateSpeech synthesizes text with the configured AI voice
func (g *Gateway) GenerateSpeech(ctx context.Context, text string) (*Speech, error) {
	backend, err := g.acquireBackend()
	if err != nil {
		return nil, err
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	res, err := g.breaker.execute(func() (interface{}, error) {
		return backend.GenerateSpeech(ctx, SpeechRequest{
			Model: g.config.TTSModel,
			Text:  text,
			Voice: g.config.Voice,
		})
	})
	if err != nil {
		return nil, g.noResult("speech", err)
	}

	speech := res.(*Speech)
	if speech == nil || speech.AudioData == "" {
		return nil, g.noResult("speech", errors.New("empty audio data"))
	}
	if _, err := audio.ParseSampleRate(speech.MIMEType); err != nil {
		return nil, g.noResult("speech", err)
	}
	return speech, nil
}

// GenerateTestPart1 returns count question/answer pairs that reuse words
func (g *Gateway) GenerateTestPart1(ctx context.Context, lang content.Language, topic string, count int, words []string, level string) ([]content.IeltsPart1Item, error) {
	raw, err := g.text(ctx, "test-part1", prompt.GetStrategy(lang).TestPart1(topic, count, words, level), nil, true)
	if err != nil {
		return nil, err
	}

	items, err := parseArray[content.IeltsPart1Item](raw)
	if err != nil {
		return nil, g.noResult("test-part1", err)
	}
	return items, nil
}

// GenerateTestPart2 returns a cue card with a sample answer that reuses words
func (g *Gateway) GenerateTestPart2(ctx context.Context, lang content.Language, topic string, words []string, level string) (*content.IeltsPart2Item, error) {
	raw, err := g.text(ctx, "test-part2", prompt.GetStrategy(lang).TestPart2(topic, words, level), nil, true)
	if err != nil {
		return nil, err
	}

	item, err := parseObject[content.IeltsPart2Item](raw)
	if err != nil {
		return nil, g.noResult("test-part2", err)
	}
	return item, nil
}

// GenerateSpeakingPractice returns count practice questions
func (g *Gateway) GenerateSpeakingPractice(ctx context.Context, lang content.Language, topic string, words []string, count int, level string) ([]content.SpeakingQuestion, error) {
	raw, err := g.text(ctx, "speaking-practice", prompt.GetStrategy(lang).SpeakingPractice(topic, words, count, level), nil, true)
	if err != nil {
		return nil, err
	}

	questions, err := parseArray[content.SpeakingQuestion](raw)
	if err != nil {
		return nil, g.noResult("speaking-practice", err)
	}
	return questions, nil
}

// CheckSpeakingAnswer returns feedback on a practice answer
func (g *Gateway) CheckSpeakingAnswer(ctx context.Context, lang content.Language, question, answer string) (string, error) {
	return g.prose(ctx, "speaking-check", prompt.GetStrategy(lang).SpeakingCheck(question, answer))
}

// EvaluateSpeaking returns examiner feedback on a speaking test answer
func (g *Gateway) EvaluateSpeaking(ctx context.Context, lang content.Language, part int, topic, level, question, answer string) (string, error) {
	return g.prose(ctx, "speaking-evaluation", prompt.GetStrategy(lang).SpeakingEvaluation(part, topic, level, question, answer))
}

// GenerateSpeakingSuggestions returns categorized conversation phrases
func (g *Gateway) GenerateSpeakingSuggestions(ctx context.Context, lang content.Language, topic, level string) ([]content.SpeakingSuggestion, error) {
	raw, err := g.text(ctx, "speaking-suggestions", prompt.GetStrategy(lang).SpeakingSuggestions(topic, level), nil, true)
	if err != nil {
		return nil, err
	}

	suggestions, err := parseArray[content.SpeakingSuggestion](raw)
	if err != nil {
		return nil, g.noResult("speaking-suggestions", err)
	}
	return suggestions, nil
}

// GenerateExampleSentences returns example sentences for word
func (g *Gateway) GenerateExampleSentences(ctx context.Context, lang content.Language, word, level string) ([]content.ExampleSentencePair, error) {
	raw, err := g.text(ctx, "example-sentences", prompt.GetStrategy(lang).ExampleSentences(word, level), nil, true)
	if err != nil {
		return nil, err
	}

	examples, err := parseArray[content.ExampleSentencePair](raw)
	if err != nil {
		return nil, g.noResult("example-sentences", err)
	}
	return examples, nil
}

func (g *Gateway) prose(ctx context.Context, op, p string) (string, error) {
	raw, err := g.text(ctx, op, p, nil, false)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", g.noResult(op, errors.New("empty text"))
	}
	return text, nil
}

func (g *Gateway) text(ctx context.Context, op, p string, temperature *float32, json bool) (string, error) {
	backend, err := g.acquireBackend()
	if err != nil {
		return "", err
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	g.logger.Debug("sending request", "op", op, "backend", backend.Name(), "model", g.config.TextModel)
	res, err := g.breaker.execute(func() (interface{}, error) {
		return backend.GenerateText(ctx, TextRequest{
			Model:       g.config.TextModel,
			Prompt:      p,
			Temperature: temperature,
			JSON:        json,
		})
	})
	if err != nil {
		return "", g.noResult(op, err)
	}
	return res.(string), nil
}

// acquireBackend resolves the key and returns a backend for it. The backend
// is rebuilt when the key changes, e.g. after login.
func (g *Gateway) acquireBackend() (Backend, error) {
	key, err := g.credentials.Resolve()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.backend != nil && g.backendKey == key {
		return g.backend, nil
	}

	backend, err := g.factory(key)
	if err != nil {
		g.logger.Error("failed to create AI backend", "provider", g.config.Provider, "error", err)
		return nil, ErrNoResult
	}
	g.backend = backend
	g.backendKey = key
	return backend, nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.config.Timeout)
}

func (g *Gateway) noResult(op string, err error) error {
	g.logger.Error("AI request failed", "op", op, "provider", g.config.Provider, "error", err)
	return ErrNoResult
}
