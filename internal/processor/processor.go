package processor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/vocabbuilder/internal"
	"codeberg.org/snonux/vocabbuilder/internal/audio"
	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/gateway"
	"codeberg.org/snonux/vocabbuilder/internal/session"
	"codeberg.org/snonux/vocabbuilder/internal/store"
)

// MinAPIKeyLength is the shortest key accepted by SaveAPIKey
const MinAPIKeyLength = 10

// speechEngine is the system voice, implemented by audio.Speaker
type speechEngine interface {
	Speak(text string, lang content.Language) error
	Done() <-chan struct{}
	Stop()
}

// wavPlayer plays AI speech, implemented by audio.Player
type wavPlayer interface {
	PlayWAV(wav []byte) (<-chan struct{}, error)
	Stop()
}

// Processor handles the main application logic
type Processor struct {
	gateway *gateway.Gateway
	store   *store.Store
	speaker speechEngine
	player  wavPlayer
	logger  *slog.Logger
	out     io.Writer
	rng     *rand.Rand
	now     func() time.Time

	mu     sync.Mutex
	state  session.State
	lastID int64
}

// Option configures a Processor
type Option func(*Processor)

// WithSpeaker replaces the system speech engine
func WithSpeaker(s speechEngine) Option {
	return func(p *Processor) { p.speaker = s }
}

// WithPlayer replaces the WAV player
func WithPlayer(pl wavPlayer) Option {
	return func(p *Processor) { p.player = pl }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// WithOutput sets where progress lines are printed
func WithOutput(w io.Writer) Option {
	return func(p *Processor) { p.out = w }
}

// WithClock sets the clock used for new set ids
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithRand sets the random source used by the practice games
func WithRand(rng *rand.Rand) Option {
	return func(p *Processor) { p.rng = rng }
}

// NewProcessor creates a processor. Call Hydrate before using it.
func NewProcessor(gw *gateway.Gateway, st *store.Store, policy session.StalenessPolicy, opts ...Option) *Processor {
	p := &Processor{
		gateway: gw,
		store:   st,
		speaker: audio.NewSpeaker(nil),
		player:  audio.NewPlayer(),
		logger:  slog.Default(),
		out:     os.Stdout,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		state:   session.NewState(policy),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns a snapshot of the session state
func (p *Processor) State() session.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Rand returns the random source for the practice games
func (p *Processor) Rand() *rand.Rand {
	return p.rng
}

// Gateway returns the AI gateway
func (p *Processor) Gateway() *gateway.Gateway {
	return p.gateway
}

// dispatch applies action to the state and returns the new state
func (p *Processor) dispatch(action session.Action) session.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = session.Reduce(p.state, action)
	return p.state
}

// Hydrate loads the persisted collections and restores the active sets
func (p *Processor) Hydrate() error {
	sets, err := p.store.LoadVocabularySets()
	if err != nil {
		return err
	}
	suggestionSets, err := p.store.LoadSuggestionSets()
	if err != nil {
		return err
	}
	activeID, _, err := p.store.LoadActiveID(store.Vocabulary)
	if err != nil {
		return err
	}
	activeSuggestionID, _, err := p.store.LoadActiveID(store.Suggestions)
	if err != nil {
		return err
	}

	state := p.dispatch(session.Hydrate{
		Sets:               sets,
		ActiveSetID:        activeID,
		SuggestionSets:     suggestionSets,
		ActiveSuggestionID: activeSuggestionID,
	})

	// Drop active ids that point at sets which no longer exist
	if activeID != 0 && state.ActiveSetID == 0 {
		p.logger.Warn("Active vocabulary set not found, clearing", "id", activeID)
		if err := p.store.ClearActiveID(store.Vocabulary); err != nil {
			return err
		}
	}
	if activeSuggestionID != 0 && state.ActiveSuggestionID == 0 {
		p.logger.Warn("Active suggestion set not found, clearing", "id", activeSuggestionID)
		if err := p.store.ClearActiveID(store.Suggestions); err != nil {
			return err
		}
	}

	p.logger.Debug("Hydrated", "sets", len(sets), "suggestion_sets", len(suggestionSets),
		"active", state.ActiveSetID, "active_suggestions", state.ActiveSuggestionID)
	return nil
}

// SelectLanguage sets the language of the next generated set
func (p *Processor) SelectLanguage(lang content.Language) {
	p.dispatch(session.SelectLanguage{Language: lang})
}

// SaveAPIKey stores a key entered by the user
func (p *Processor) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) < MinAPIKeyLength {
		return userError(msgKeyTooShort, fmt.Errorf("API key shorter than %d characters", MinAPIKeyLength))
	}
	return p.store.SaveAPIKey(key)
}

// ClearAPIKey removes the stored key
func (p *Processor) ClearAPIKey() error {
	return p.store.ClearAPIKey()
}

// start registers a new request for op
func (p *Processor) start(op session.Operation) (uuid.UUID, session.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.CanStart(op) {
		return uuid.Nil, p.state, fmt.Errorf("%s: %w", op, ErrBusy)
	}
	id := uuid.New()
	p.state = session.Reduce(p.state, session.RequestStarted{Op: op, ID: id})
	return id, p.state, nil
}

// fail records a failed request and returns the error for the caller
func (p *Processor) fail(op session.Operation, id uuid.UUID, message string, err error) error {
	if errors.Is(err, gateway.ErrMissingAPIKey) {
		message = msgMissingKey
	}
	p.dispatch(session.RequestFailed{Op: op, ID: id, Message: message})
	return userError(message, err)
}

// nextSetID returns a creation timestamp id that is unique within this
// process
func (p *Processor) nextSetID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := internal.NewSetIDAt(p.now())
	if id <= p.lastID {
		id = p.lastID + 1
	}
	p.lastID = id
	return id
}

// requireActiveSet returns the active set or a user error
func requireActiveSet(state session.State) (content.VocabularySet, error) {
	set, ok := state.ActiveSet()
	if !ok || len(state.VocabularyList) == 0 {
		return content.VocabularySet{}, userError(msgNoActiveSet, ErrNoActiveSet)
	}
	set.VocabularyList = state.VocabularyList
	return set, nil
}

func (p *Processor) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
