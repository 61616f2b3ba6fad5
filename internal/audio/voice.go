package audio

import (
	"bufio"
	"path"
	"strings"

	"golang.org/x/text/language"
)

// Voice is a speech engine voice
type Voice struct {
	ID       string // passed to the engine, e.g. "en-US" or "mb-us1"
	Name     string
	Language string // BCP 47 tag as reported by the engine
}

// parseVoiceList parses the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 2  en-us           --/M      English_(America)  gmw/en-US     (en 10)
func parseVoiceList(output string) []Voice {
	var voices []Voice

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{
			ID:       path.Base(fields[4]),
			Name:     fields[3],
			Language: fields[1],
		})
	}
	return voices
}

// SelectVoice picks the best voice for tag. Preference order: exact tag with
// vendor in the name, exact tag, same base language. ok is false when no
// voice speaks the language.
func SelectVoice(voices []Voice, tag, vendor string) (Voice, bool) {
	want, err := language.Parse(tag)
	if err != nil {
		return Voice{}, false
	}
	wantBase, _ := want.Base()

	var exact, family []Voice
	for _, v := range voices {
		got, err := language.Parse(v.Language)
		if err != nil {
			continue
		}
		if got == want {
			exact = append(exact, v)
			continue
		}
		if base, _ := got.Base(); base == wantBase {
			family = append(family, v)
		}
	}

	if vendor != "" {
		for _, v := range exact {
			if strings.Contains(strings.ToLower(v.Name), strings.ToLower(vendor)) {
				return v, true
			}
		}
	}
	if len(exact) > 0 {
		return exact[0], true
	}
	if len(family) > 0 {
		return family[0], true
	}
	return Voice{}, false
}
