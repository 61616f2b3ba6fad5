package audio

import (
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingRunner) run(name string, args ...string) *exec.Cmd {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()
	return exec.Command("sleep", "5")
}

func newTestSpeaker(r *recordingRunner) *Speaker {
	s := NewSpeaker(nil)
	s.run = r.run
	s.voices = parseVoiceList(sampleVoiceList)
	return s
}

func TestSpeakerArgs(t *testing.T) {
	s := newTestSpeaker(&recordingRunner{})

	tests := []struct {
		lang      content.Language
		wantVoice string
		wantSpeed string
	}{
		{content.English, "mb-us1", "157"},
		{content.Chinese, "zh-TW", "140"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			args := s.args("text", tt.lang)
			joined := strings.Join(args, " ")
			if !strings.Contains(joined, "-v "+tt.wantVoice) {
				t.Errorf("args %q missing voice %s", joined, tt.wantVoice)
			}
			if !strings.Contains(joined, "-s "+tt.wantSpeed) {
				t.Errorf("args %q missing speed %s", joined, tt.wantSpeed)
			}
			if args[len(args)-1] != "text" {
				t.Errorf("text must be the last argument, got %q", args[len(args)-1])
			}
		})
	}
}

func TestSpeakerFallbackVoice(t *testing.T) {
	s := NewSpeaker(nil)
	s.voices = []Voice{}

	if got := s.VoiceFor(content.Chinese); got != "cmn" {
		t.Errorf("VoiceFor(Chinese) = %q, want cmn", got)
	}
	if got := s.VoiceFor(content.English); got != "en-us" {
		t.Errorf("VoiceFor(English) = %q, want en-us", got)
	}
}

func TestSpeakerLastCallerWins(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	r := &recordingRunner{}
	s := newTestSpeaker(r)

	if err := s.Speak("first", content.English); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	s.mu.Lock()
	firstDone := s.done
	s.mu.Unlock()

	if err := s.Speak("second", content.English); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}

	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first utterance was not cancelled")
	}
	if !s.IsSpeaking() {
		t.Error("second utterance should still be speaking")
	}

	s.Stop()
	if s.IsSpeaking() {
		t.Error("Stop() did not cancel the utterance")
	}
	if len(r.calls) != 2 {
		t.Errorf("expected 2 engine invocations, got %d", len(r.calls))
	}
}

func TestSpeakRejectsInvalidText(t *testing.T) {
	r := &recordingRunner{}
	s := newTestSpeaker(r)

	if err := s.Speak("  ", content.English); err == nil {
		t.Error("expected error for empty text")
	}
	if err := s.Speak("ni hao", content.Chinese); err == nil {
		t.Error("expected error for Chinese text without Hanzi")
	}
	if len(r.calls) != 0 {
		t.Errorf("engine should not run for invalid text, got %d calls", len(r.calls))
	}
}
