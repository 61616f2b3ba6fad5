package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/audio"
	"codeberg.org/snonux/vocabbuilder/internal/content"
	"codeberg.org/snonux/vocabbuilder/internal/session"
)

// Voice selects how text is spoken
type Voice int

const (
	// VoiceAuto uses the AI voice for English and the system voice for
	// Chinese
	VoiceAuto Voice = iota
	// VoiceAI always uses the AI voice
	VoiceAI
	// VoiceSystem always uses the local speech engine
	VoiceSystem
)

func (v Voice) String() string {
	switch v {
	case VoiceAuto:
		return "auto"
	case VoiceAI:
		return "ai"
	case VoiceSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ParseVoice parses "auto", "ai" or "system"
func ParseVoice(s string) (Voice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return VoiceAuto, nil
	case "ai":
		return VoiceAI, nil
	case "system", "espeak":
		return VoiceSystem, nil
	default:
		return VoiceAuto, fmt.Errorf("unknown voice: %q (use auto, ai or system)", s)
	}
}

var markupPattern = regexp.MustCompile(`<[^>]+>`)

// PlainText removes markup such as <strong> word markers
func PlainText(s string) string {
	return strings.TrimSpace(markupPattern.ReplaceAllString(s, ""))
}

// Speak reads text aloud in the language of the active set. The returned
// channel is closed when speaking finishes. AI voice failures fall back
// to the system voice. A new utterance replaces one still playing on the
// same voice; the other voice keeps playing until StopAudio.
func (p *Processor) Speak(ctx context.Context, text string, voice Voice) (<-chan struct{}, error) {
	text = PlainText(text)
	lang := p.State().ActiveLanguage()
	if err := audio.ValidateText(text, lang); err != nil {
		return nil, err
	}

	if voice == VoiceSystem || (voice == VoiceAuto && lang == content.Chinese) {
		return p.speakSystem(text, lang)
	}

	done, err := p.speakAI(ctx, text)
	if err == nil {
		return done, nil
	}

	p.logger.Warn("AI speech failed", "error", err)
	p.printf("%s\n", msgSpeechFailed)
	return p.speakSystem(text, lang)
}

func (p *Processor) speakSystem(text string, lang content.Language) (<-chan struct{}, error) {
	if err := p.speaker.Speak(text, lang); err != nil {
		return nil, err
	}
	return p.speaker.Done(), nil
}

func (p *Processor) speakAI(ctx context.Context, text string) (<-chan struct{}, error) {
	id, _, err := p.start(session.OpSpeech)
	if err != nil {
		return nil, err
	}
	speech, err := p.gateway.GenerateSpeech(ctx, text)
	if err != nil {
		p.dispatch(session.RequestFailed{Op: session.OpSpeech, ID: id, Message: msgSpeechFailed})
		return nil, err
	}
	wav, err := audio.WAVFromSpeech(speech.AudioData, speech.MIMEType)
	if err != nil {
		p.dispatch(session.RequestFailed{Op: session.OpSpeech, ID: id, Message: msgSpeechFailed})
		return nil, err
	}
	p.dispatch(session.DerivedContentReady{Op: session.OpSpeech, ID: id})
	p.player.Stop()
	return p.player.PlayWAV(wav)
}

// StopAudio stops both the AI voice and the system voice
func (p *Processor) StopAudio() {
	audio.StopAll(p.speaker, p.player)
}
