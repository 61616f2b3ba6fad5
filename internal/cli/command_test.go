package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
	"codeberg.org/snonux/vocabbuilder/internal/session"
	"codeberg.org/snonux/vocabbuilder/internal/store"
	"codeberg.org/snonux/vocabbuilder/internal/testutil"
)

func closedChan() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

type silentSpeaker struct {
	spoken []string
}

func (s *silentSpeaker) Speak(text string, lang content.Language) error {
	s.spoken = append(s.spoken, text)
	return nil
}

func (s *silentSpeaker) Done() <-chan struct{} { return closedChan() }

func (s *silentSpeaker) Stop() {}

type silentPlayer struct {
	played int
}

func (p *silentPlayer) PlayWAV(wav []byte) (<-chan struct{}, error) {
	p.played++
	return closedChan(), nil
}

func (p *silentPlayer) Stop() {}

type testEnv struct {
	rt      *runtime
	app     *App
	fake    *testutil.FakeBackend
	speaker *silentSpeaker
	procOut *bytes.Buffer
}

// newTestEnv returns a runtime whose App uses a memory store and a scripted
// AI backend that answers vocabulary requests with ten words
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "VOCABBUILDER_API_KEY"} {
		t.Setenv(name, "")
	}

	gen := &testutil.TestDataGenerator{}
	fake := testutil.NewFakeBackend(gen.VocabularyJSON(10))

	config := gateway.DefaultConfig()
	config.BreakerMaxFailures = 0
	st := store.New(store.NewMemoryKV())
	if err := st.SaveAPIKey("test-key-123"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}
	gw := gateway.New(config, gateway.NewCredentialSource(config.Provider, "", st), gateway.WithBackendFactory(fake.Factory()))

	env := &testEnv{fake: fake, speaker: &silentSpeaker{}, procOut: &bytes.Buffer{}}
	proc := processor.NewProcessor(gw, st, session.ApplyAlways,
		processor.WithSpeaker(env.speaker),
		processor.WithPlayer(&silentPlayer{}),
		processor.WithOutput(env.procOut),
		processor.WithRand(rand.New(rand.NewSource(1))),
	)
	if err := proc.Hydrate(); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	env.app = &App{Store: st, Gateway: gw, Processor: proc, StorePath: "memory"}

	env.rt = newRuntime(NewFlags())
	env.rt.open = func(*slog.Logger) (*App, error) { return env.app, nil }
	return env
}

// execute runs the command line args with input as standard input
func (e *testEnv) execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := createRootCommand(e.rt)
	out := &bytes.Buffer{}
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(input))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) mustExecute(t *testing.T, input string, args ...string) string {
	t.Helper()
	out, err := e.execute(t, input, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return string(data)
}

func TestCreateRootCommand(t *testing.T) {
	cmd := CreateRootCommand(NewFlags())

	if cmd.Use != "vocabbuilder" {
		t.Errorf("Expected Use to be 'vocabbuilder', got %s", cmd.Use)
	}
	if !strings.Contains(cmd.Short, "Vietnamese learners") {
		t.Errorf("Unexpected Short description: %s", cmd.Short)
	}

	for _, name := range []string{
		"config", "log-level", "log-format", "staleness", "store", "store-driver",
		"provider", "model", "tts-model", "ai-voice", "timeout",
		"breaker-max-failures", "breaker-timeout",
	} {
		t.Run("flag_"+name, func(t *testing.T) {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("Expected persistent flag %s to exist", name)
			}
		})
	}

	for _, path := range [][]string{
		{"generate"}, {"sets", "list"}, {"sets", "load"}, {"sets", "delete"}, {"sets", "show"},
		{"examples"}, {"topics"}, {"language"}, {"batch"}, {"export"},
		{"podcast"}, {"ielts", "part1"}, {"ielts", "part2"}, {"ielts", "evaluate"},
		{"speaking", "practice"}, {"speaking", "check"},
		{"suggestions", "generate"}, {"suggestions", "list"}, {"suggestions", "load"},
		{"suggestions", "delete"}, {"suggestions", "show"},
		{"speak"}, {"stop"}, {"quiz"}, {"match"}, {"spell"},
		{"login"}, {"logout"}, {"status"}, {"models"}, {"archive"}, {"shell"},
	} {
		t.Run("command_"+strings.Join(path, "_"), func(t *testing.T) {
			found, _, err := cmd.Find(path)
			if err != nil || found.Name() != path[len(path)-1] {
				t.Errorf("Expected command %v to exist", path)
			}
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "", "generate", "Family", "--level", "B2")

	if !strings.Contains(out, "Family (B2, English, 10 words)") {
		t.Errorf("Expected set header in output, got:\n%s", out)
	}
	if !strings.Contains(out, "word1 (noun) /wɜːd/") {
		t.Errorf("Expected first word in output, got:\n%s", out)
	}

	state := env.app.Processor.State()
	if len(state.SavedSets) != 1 || state.ActiveSetID != state.SavedSets[0].ID {
		t.Errorf("Expected one saved active set, got %+v", state.SavedSets)
	}
}

func TestGenerateCommandValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"count not offered", []string{"generate", "Family", "-n", "7"}},
		{"level of another language", []string{"generate", "Family", "--level", "HSK 2"}},
		{"unknown language", []string{"generate", "Family", "-l", "klingon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if _, err := env.execute(t, "", tt.args...); err == nil {
				t.Errorf("Expected %v to fail", tt.args)
			}
			if calls := len(env.fake.TextCalls()); calls != 0 {
				t.Errorf("Expected no AI request, got %d", calls)
			}
		})
	}
}

func TestSetsCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")
	env.mustExecute(t, "", "generate", "Food", "&", "Cooking")

	sets := env.app.Processor.State().SavedSets
	if len(sets) != 2 {
		t.Fatalf("Expected 2 saved sets, got %d", len(sets))
	}
	var family content.VocabularySet
	for _, set := range sets {
		if set.Topic == "Family" {
			family = set
		}
	}
	familyID := strconv.FormatInt(family.ID, 10)

	out := env.mustExecute(t, "", "sets", "list")
	if !strings.Contains(out, "Family") || !strings.Contains(out, "Food & Cooking") {
		t.Errorf("Expected both sets listed, got:\n%s", out)
	}
	if !strings.Contains(out, "* ") {
		t.Errorf("Expected the active set to be marked, got:\n%s", out)
	}

	out = env.mustExecute(t, "", "sets", "load", familyID)
	if !strings.Contains(out, "Family (B1, English, 10 words)") {
		t.Errorf("Expected loaded set in output, got:\n%s", out)
	}
	if env.app.Processor.State().ActiveSetID != family.ID {
		t.Errorf("Expected set %d to be active", family.ID)
	}

	out = env.mustExecute(t, "", "sets", "show")
	if !strings.Contains(out, "#"+familyID) {
		t.Errorf("Expected the active set to be shown, got:\n%s", out)
	}

	out = env.mustExecute(t, "", "sets", "delete", familyID)
	if !strings.Contains(out, "Deleted set "+familyID) {
		t.Errorf("Unexpected delete output:\n%s", out)
	}
	if n := len(env.app.Processor.State().SavedSets); n != 1 {
		t.Errorf("Expected 1 set after delete, got %d", n)
	}

	_, err := env.execute(t, "", "sets", "delete", familyID)
	if !errors.Is(err, processor.ErrSetNotFound) {
		t.Errorf("Expected ErrSetNotFound, got %v", err)
	}
	if _, err := env.execute(t, "", "sets", "load", "abc"); err == nil {
		t.Error("Expected an invalid id to fail")
	}
}

func TestQuizCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "x\n1\n2\n3\n4\n1\n", "quiz", "--mode", "vi-en", "-n", "5")

	if !strings.Contains(out, "Please enter a number between 1 and 4") {
		t.Errorf("Expected invalid choice to be rejected, got:\n%s", out)
	}
	if !strings.Contains(out, "Câu 5/5") {
		t.Errorf("Expected five questions, got:\n%s", out)
	}
	if !strings.Contains(out, "/ 5") || !strings.Contains(out, "Điểm của bạn:") {
		t.Errorf("Expected a score line, got:\n%s", out)
	}
}

func TestQuizCommandEndOfInput(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "", "quiz", "-n", "5")
	if !strings.Contains(out, "Điểm của bạn: 0 / 5") {
		t.Errorf("Expected an empty score, got:\n%s", out)
	}
}

func TestPracticeNeedsActiveSet(t *testing.T) {
	for _, args := range [][]string{{"quiz"}, {"match"}, {"spell"}, {"podcast"}, {"ielts", "part1"}} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.execute(t, "", args...)
			if !errors.Is(err, processor.ErrNoActiveSet) {
				t.Errorf("Expected ErrNoActiveSet, got %v", err)
			}
		})
	}
}

func TestQuizCommandInvalidMode(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.execute(t, "", "quiz", "--mode", "fr-vi"); err == nil {
		t.Error("Expected an unknown mode to fail")
	}
}

func TestSpellCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "wrong\nwrong\n", "spell", "--listen=false")

	if !strings.Contains(out, "Sai rồi!") {
		t.Errorf("Expected wrong answer feedback, got:\n%s", out)
	}
	if !strings.Contains(out, "Điểm của bạn: 0 / 2") {
		t.Errorf("Expected score of two asked words, got:\n%s", out)
	}
	if len(env.speaker.spoken) != 0 {
		t.Errorf("Expected no speech, got %v", env.speaker.spoken)
	}
}

func TestSpellCommandSpeaksAfterAnswer(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	env.mustExecute(t, "", "spell")
	if len(env.speaker.spoken) != 0 {
		t.Errorf("Expected no speech before an answer, got %v", env.speaker.spoken)
	}

	out := env.mustExecute(t, "wrong\n", "spell")
	if len(env.speaker.spoken) != 1 {
		t.Fatalf("Expected the answered word to be spoken once, got %v", env.speaker.spoken)
	}
	if !strings.Contains(out, fmt.Sprintf("Sai rồi! Đáp án đúng là: %q", env.speaker.spoken[0])) {
		t.Errorf("Expected the spoken word to be the answered one, got %v and:\n%s", env.speaker.spoken, out)
	}
}

func TestMatchCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "zz\n", "match", "--pairs", "4")

	if !strings.Contains(out, "Please answer with a number and a letter") {
		t.Errorf("Expected invalid pair to be rejected, got:\n%s", out)
	}
	if !strings.Contains(out, " 4. ") || strings.Contains(out, " 5. ") {
		t.Errorf("Expected four pairs, got:\n%s", out)
	}
}

func TestPodcastCommand(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Respond("podcast scriptwriter", "Welcome to the show about <strong>word1</strong>.")
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "", "podcast", "--length", "150")
	if !strings.Contains(out, "Welcome to the show about *word1*.") {
		t.Errorf("Expected rendered script, got:\n%s", out)
	}
}

func TestIeltsPart1Interactive(t *testing.T) {
	env := newTestEnv(t)
	part1 := []content.IeltsPart1Item{
		{Question: "Do you have a big family?", Answer: "Yes, my <strong>word1</strong> is big."},
		{Question: "Who do you live with?", Answer: "I live with my <strong>word2</strong>."},
	}
	env.fake.
		Respond("IELTS Speaking Part 1", mustJSON(t, part1)).
		Respond("IELTS Examiner. Part", "Fluency: <strong>tốt</strong>")
	env.mustExecute(t, "", "generate", "Family")

	out := env.mustExecute(t, "Yes, it is quite big.\n\n", "ielts", "part1", "-i", "-n", "2")

	if !strings.Contains(out, "Who do you live with?") {
		t.Errorf("Expected both questions, got:\n%s", out)
	}
	if strings.Count(out, "Fluency: *tốt*") != 1 {
		t.Errorf("Expected exactly one evaluation, got:\n%s", out)
	}
	key := session.FeedbackKey(session.OpPart1, 0)
	if got := env.app.Processor.State().Answers[key]; got != "Yes, it is quite big." {
		t.Errorf("Expected recorded answer, got %q", got)
	}
}

func TestIeltsEvaluateNeedsQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	if _, err := env.execute(t, "", "ielts", "evaluate", "1", "1", "My", "answer"); err == nil {
		t.Error("Expected evaluation without questions to fail")
	}
	if _, err := env.execute(t, "", "ielts", "evaluate", "1", "zero", "answer"); err == nil {
		t.Error("Expected an invalid question number to fail")
	}
}

func TestSuggestionsCommands(t *testing.T) {
	env := newTestEnv(t)
	suggestions := []content.SpeakingSuggestion{
		{Category: "Mở đầu", Phrases: []content.PhrasePair{{En: "Let me tell you about my family.", Vi: "Để tôi kể về gia đình tôi."}}},
	}
	env.fake.Respond("conversation phrases", mustJSON(t, suggestions))

	out := env.mustExecute(t, "", "suggestions", "generate", "Family", "--level", "B1")
	if !strings.Contains(out, "Let me tell you about my family.") {
		t.Errorf("Expected phrases in output, got:\n%s", out)
	}

	state := env.app.Processor.State()
	if len(state.SavedSuggestionSets) != 1 {
		t.Fatalf("Expected one suggestion set, got %d", len(state.SavedSuggestionSets))
	}
	id := strconv.FormatInt(state.SavedSuggestionSets[0].ID, 10)

	out = env.mustExecute(t, "", "suggestions", "list")
	if !strings.Contains(out, "Family") {
		t.Errorf("Expected set in list, got:\n%s", out)
	}
	env.mustExecute(t, "", "suggestions", "delete", id)
	if n := len(env.app.Processor.State().SavedSuggestionSets); n != 0 {
		t.Errorf("Expected no suggestion sets after delete, got %d", n)
	}
}

func TestShellKeepsSessionBetweenCommands(t *testing.T) {
	env := newTestEnv(t)
	practice := []content.SpeakingQuestion{{Question: "Tell me about your family.", SuggestedWords: []string{"word1"}}}
	env.fake.
		Respond("practice questions", mustJSON(t, practice)).
		Respond("Evaluate student answer", "Câu trả lời tốt.")

	input := strings.Join([]string{
		"generate Family",
		"speaking practice",
		`speaking check 1 "I live with my parents."`,
		"shell",
		"exit",
	}, "\n") + "\n"
	out := env.mustExecute(t, input)

	if !strings.Contains(out, "vocabbuilder (Family, B1)> ") {
		t.Errorf("Expected prompt with the active set, got:\n%s", out)
	}
	if !strings.Contains(out, "Câu trả lời tốt.") {
		t.Errorf("Expected feedback from the shared session, got:\n%s", out)
	}
	if !strings.Contains(out, "Error: already in the interactive shell") {
		t.Errorf("Expected nested shell to be refused, got:\n%s", out)
	}
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.execute(t, "", "login", "short"); err == nil {
		t.Error("Expected a short key to be rejected")
	}

	out := env.mustExecute(t, "  abcdefghijkl  \n", "login")
	if !strings.Contains(out, "API key saved") {
		t.Errorf("Unexpected login output:\n%s", out)
	}
	if key, _ := env.app.Store.LoadAPIKey(); key != "abcdefghijkl" {
		t.Errorf("Expected trimmed key to be saved, got %q", key)
	}

	env.mustExecute(t, "", "logout")
	if _, ok := env.app.Store.LoadAPIKey(); ok {
		t.Error("Expected key to be removed")
	}

	out = env.mustExecute(t, "", "status")
	if !strings.Contains(out, "API key:         missing") {
		t.Errorf("Expected missing key in status, got:\n%s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "", "status")
	for _, want := range []string{"Language:        English", "Active set:      none", "API key:         saved", "Circuit breaker: disabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in status, got:\n%s", want, out)
		}
	}
}

func TestBatchCommand(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "topics.txt")
	testutil.CreateTestFile(t, path, []byte("# topics\nFamily\nFood & Cooking = B2\n"))

	env.mustExecute(t, "", "batch", path)

	if !strings.Contains(env.procOut.String(), "Processed: 2") {
		t.Errorf("Expected batch summary, got:\n%s", env.procOut.String())
	}
	if n := len(env.app.Processor.State().SavedSets); n != 2 {
		t.Errorf("Expected 2 saved sets, got %d", n)
	}
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustExecute(t, "", "generate", "Family")

	path := filepath.Join(t.TempDir(), "export", "family.csv")
	env.mustExecute(t, "", "export", "-o", path)

	testutil.AssertFileExists(t, path)
	testutil.AssertFileContains(t, path, "word1")
}

func TestTopicsCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustExecute(t, "", "topics", "-l", "chinese")
	for _, want := range []string{"Everyday life:", "Personal Information", "HSK 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestArchiveCommand(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	testutil.CreateTestFile(t, path, []byte("{}"))
	viper.Set(keyStorePath, path)

	out := env.mustExecute(t, "", "archive")

	if !strings.Contains(out, "Archived store to") {
		t.Errorf("Unexpected output:\n%s", out)
	}
	testutil.AssertFileNotExists(t, path)
	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected one archived store, got %v (%v)", entries, err)
	}

	viper.Set(keyStoreDriver, "memory")
	if _, err := env.execute(t, "", "archive"); err == nil {
		t.Error("Expected archiving the memory store to fail")
	}
}
