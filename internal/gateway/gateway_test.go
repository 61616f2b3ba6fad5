package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/testutil"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(name, "")
	}
}

func newGateway(t *testing.T, fake *testutil.FakeBackend, config *gateway.Config) *gateway.Gateway {
	t.Helper()
	clearEnv(t)
	if config == nil {
		config = gateway.DefaultConfig()
	}
	creds := gateway.NewCredentialSource(config.Provider, "", testutil.StaticKeys("test-key"))
	return gateway.New(config, creds, gateway.WithBackendFactory(fake.Factory()))
}

func TestGenerateVocabulary(t *testing.T) {
	gen := &testutil.TestDataGenerator{}
	fake := testutil.NewFakeBackend(gen.VocabularyJSON(10))
	g := newGateway(t, fake, nil)

	items, err := g.GenerateVocabulary(context.Background(), content.English, "Family", "B1", 10)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, "word1", items[0].Word)

	calls := fake.TextCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].JSON)
	assert.Equal(t, "gemini-2.5-flash", calls[0].Model)
	require.NotNil(t, calls[0].Temperature)
	assert.InDelta(t, 0.4, *calls[0].Temperature, 0.0001)
	assert.Contains(t, calls[0].Prompt, "exactly 10 objects")
}

func TestGenerateVocabularyFailuresCollapseToNoResult(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"not json", "Sure! Here are some words.", nil},
		{"object instead of array", `{"word":"aunt","meaning":"cô"}`, nil},
		{"empty array", `[]`, nil},
		{"missing required field", `[{"word":"aunt"}]`, nil},
		{"backend error", "", testutil.ErrFakeBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &testutil.FakeBackend{Text: tt.text, TextErr: tt.err}
			g := newGateway(t, fake, nil)

			items, err := g.GenerateVocabulary(context.Background(), content.English, "Family", "B1", 10)
			assert.ErrorIs(t, err, gateway.ErrNoResult)
			assert.Nil(t, items)
		})
	}
}

func TestMissingKeyFailsBeforeRequest(t *testing.T) {
	clearEnv(t)
	fake := testutil.NewFakeBackend("[]")
	creds := gateway.NewCredentialSource("gemini", "", testutil.StaticKeys(""))
	g := gateway.New(gateway.DefaultConfig(), creds, gateway.WithBackendFactory(fake.Factory()))

	_, err := g.GeneratePodcast(context.Background(), content.English, "Family", 300, []string{"aunt"})
	assert.ErrorIs(t, err, gateway.ErrMissingAPIKey)
	assert.Empty(t, fake.TextCalls())
}

func TestProseOperations(t *testing.T) {
	fake := testutil.NewFakeBackend("  Rất tốt!  ")
	g := newGateway(t, fake, nil)
	ctx := context.Background()

	feedback, err := g.CheckSpeakingAnswer(ctx, content.English, "Do you like cooking?", "Yes I like")
	require.NoError(t, err)
	assert.Equal(t, "Rất tốt!", feedback)

	eval, err := g.EvaluateSpeaking(ctx, content.Chinese, 1, "家庭", "HSK 3", "你家有几口人？", "我家有三口人")
	require.NoError(t, err)
	assert.Equal(t, "Rất tốt!", eval)

	for _, call := range fake.TextCalls() {
		assert.False(t, call.JSON)
		assert.Nil(t, call.Temperature)
	}
}

func TestEmptyProseIsNoResult(t *testing.T) {
	g := newGateway(t, testutil.NewFakeBackend("   "), nil)

	_, err := g.GeneratePodcast(context.Background(), content.English, "Family", 300, nil)
	assert.ErrorIs(t, err, gateway.ErrNoResult)
}

func TestStructuredOperations(t *testing.T) {
	fake := testutil.NewFakeBackend("").
		Respond("Part 1 Examiner", `[{"question":"Do you have a big family?","answer":"Yes, my <strong>aunt</strong>..."}]`).
		Respond("Part 2 Examiner", `{"topic":"Describe a relative","cue_card":["who"],"answer":"..."}`).
		Respond("practice questions", `[{"question":"Who do you live with?","suggested_words":["aunt"]}]`).
		Respond("conversation phrases", `[{"category":"Hỏi thăm","phrases":[{"en":"How is your family?","vi":"Gia đình bạn thế nào?"}]}]`).
		Respond("example sentences", `[{"en":"My aunt lives nearby.","vi":"Cô tôi sống gần đây."}]`)
	g := newGateway(t, fake, nil)
	ctx := context.Background()
	words := []string{"aunt"}

	part1, err := g.GenerateTestPart1(ctx, content.English, "Family", 5, words, "B1")
	require.NoError(t, err)
	assert.Len(t, part1, 1)

	part2, err := g.GenerateTestPart2(ctx, content.English, "Family", words, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Describe a relative", part2.Topic)

	questions, err := g.GenerateSpeakingPractice(ctx, content.English, "Family", words, 5, "B1")
	require.NoError(t, err)
	assert.Equal(t, []string{"aunt"}, questions[0].SuggestedWords)

	suggestions, err := g.GenerateSpeakingSuggestions(ctx, content.English, "Family", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Hỏi thăm", suggestions[0].Category)

	examples, err := g.GenerateExampleSentences(ctx, content.English, "aunt", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Cô tôi sống gần đây.", examples[0].Vi)
}

func TestGenerateSpeech(t *testing.T) {
	gen := &testutil.TestDataGenerator{}

	t.Run("valid", func(t *testing.T) {
		fake := &testutil.FakeBackend{Speech: gen.PCMSpeech(100, 24000)}
		g := newGateway(t, fake, nil)

		speech, err := g.GenerateSpeech(context.Background(), "hello")
		require.NoError(t, err)
		assert.Contains(t, speech.MIMEType, "rate=24000")

		calls := fake.SpeechCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "Kore", calls[0].Voice)
		assert.Equal(t, "gemini-2.5-flash-preview-tts", calls[0].Model)
	})

	t.Run("missing sample rate", func(t *testing.T) {
		speech := gen.PCMSpeech(100, 24000)
		speech.MIMEType = "audio/L16;codec=pcm"
		g := newGateway(t, &testutil.FakeBackend{Speech: speech}, nil)

		_, err := g.GenerateSpeech(context.Background(), "hello")
		assert.ErrorIs(t, err, gateway.ErrNoResult)
	})

	t.Run("no audio", func(t *testing.T) {
		g := newGateway(t, &testutil.FakeBackend{}, nil)

		_, err := g.GenerateSpeech(context.Background(), "hello")
		assert.ErrorIs(t, err, gateway.ErrNoResult)
	})
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	config := gateway.DefaultConfig()
	config.BreakerMaxFailures = 2
	fake := &testutil.FakeBackend{TextErr: errors.New("503 unavailable")}
	g := newGateway(t, fake, config)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := g.CheckSpeakingAnswer(ctx, content.English, "q", "a")
		assert.ErrorIs(t, err, gateway.ErrNoResult)
	}

	assert.Len(t, fake.TextCalls(), 2, "open breaker should stop further requests")
	assert.Equal(t, "open", g.BreakerState())
}

func TestBreakerDisabled(t *testing.T) {
	config := gateway.DefaultConfig()
	config.BreakerMaxFailures = 0
	fake := &testutil.FakeBackend{TextErr: errors.New("boom")}
	g := newGateway(t, fake, config)

	for i := 0; i < 3; i++ {
		_, _ = g.CheckSpeakingAnswer(context.Background(), content.English, "q", "a")
	}
	assert.Len(t, fake.TextCalls(), 3)
	assert.Equal(t, "disabled", g.BreakerState())
}

func TestNewBackend(t *testing.T) {
	_, err := gateway.NewBackend(gateway.DefaultConfig(), "")
	assert.ErrorIs(t, err, gateway.ErrMissingAPIKey)

	config := gateway.DefaultConfig()
	config.Provider = "unknown"
	_, err = gateway.NewBackend(config, "key")
	assert.Error(t, err)

	backend, err := gateway.NewBackend(gateway.DefaultOpenAIConfig(), "key")
	require.NoError(t, err)
	assert.Equal(t, "openai", backend.Name())
}
