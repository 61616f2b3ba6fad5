package audio

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// SpeakerConfig holds espeak-ng settings
type SpeakerConfig struct {
	Binary    string // espeak-ng executable
	Speed     int    // base speed in words per minute, scaled per language
	Pitch     int    // 0 to 99
	Amplitude int    // 0 to 200
	Vendor    string // preferred substring in voice names
}

// DefaultSpeakerConfig returns the default espeak-ng settings
func DefaultSpeakerConfig() *SpeakerConfig {
	return &SpeakerConfig{
		Binary:    "espeak-ng",
		Speed:     175,
		Pitch:     50,
		Amplitude: 100,
		Vendor:    "mbrola",
	}
}

// Rate returns the speech rate factor for lang. Chinese is spoken slower.
func Rate(lang content.Language) float64 {
	if lang.OrDefault() == content.Chinese {
		return 0.8
	}
	return 0.9
}

// fallbackVoices are used when the engine's voice list is unavailable
var fallbackVoices = map[content.Language]string{
	content.English: "en-us",
	content.Chinese: "cmn",
}

// Speaker speaks text with the system speech engine. A new utterance
// cancels the one in progress.
type Speaker struct {
	config *SpeakerConfig
	run    func(name string, args ...string) *exec.Cmd

	voicesOnce sync.Once
	voices     []Voice

	mu      sync.Mutex
	current *exec.Cmd
	done    chan struct{}
}

// NewSpeaker creates a speaker. It does not check that the engine is
// installed; Speak reports that.
func NewSpeaker(config *SpeakerConfig) *Speaker {
	if config == nil {
		config = DefaultSpeakerConfig()
	}
	return &Speaker{config: config, run: exec.Command}
}

// Speak starts speaking text and returns immediately
func (s *Speaker) Speak(text string, lang content.Language) error {
	if err := ValidateText(text, lang); err != nil {
		return err
	}

	s.Stop()

	cmd := s.run(s.config.Binary, s.args(text, lang)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s failed: %w", s.config.Binary, err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.current = cmd
	s.done = done
	s.mu.Unlock()

	go func() {
		cmd.Wait()
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
			s.done = nil
		}
		s.mu.Unlock()
		close(done)
	}()

	return nil
}

// Stop cancels the utterance in progress
func (s *Speaker) Stop() {
	s.mu.Lock()
	cmd, done := s.current, s.done
	s.mu.Unlock()

	if cmd == nil {
		return
	}
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
	<-done
}

// Done returns a channel closed when the current utterance ends. It
// returns a closed channel when nothing is being spoken.
func (s *Speaker) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

// IsSpeaking reports whether an utterance is in progress
func (s *Speaker) IsSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// VoiceFor returns the engine voice used for lang
func (s *Speaker) VoiceFor(lang content.Language) string {
	if v, ok := SelectVoice(s.availableVoices(), lang.Tag(), s.config.Vendor); ok {
		return v.ID
	}
	return fallbackVoices[lang.OrDefault()]
}

func (s *Speaker) args(text string, lang content.Language) []string {
	speed := int(float64(s.config.Speed) * Rate(lang))

	return []string{
		"-v", s.VoiceFor(lang),
		"-s", strconv.Itoa(speed),
		"-p", strconv.Itoa(s.config.Pitch),
		"-a", strconv.Itoa(s.config.Amplitude),
		text,
	}
}

func (s *Speaker) availableVoices() []Voice {
	s.voicesOnce.Do(func() {
		if s.voices != nil {
			return
		}
		out, err := s.run(s.config.Binary, "--voices").Output()
		if err != nil {
			slog.Debug("could not list speech voices", "binary", s.config.Binary, "error", err)
			return
		}
		s.voices = parseVoiceList(string(out))
	})
	return s.voices
}
