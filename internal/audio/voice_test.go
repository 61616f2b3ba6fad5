package audio

import "testing"

const sampleVoiceList = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 2  en-gb           --/M      English_(Great_Britain) gmw/en               (en 2)
 2  en-us           --/M      English_(America)  gmw/en-US            (en 10)
 5  en-us           --/M      en-us-mbrola-1     mb/mb-us1
 5  zh-tw           --/M      Chinese_(Taiwan)   sit/zh-TW
`

func TestParseVoiceList(t *testing.T) {
	voices := parseVoiceList(sampleVoiceList)
	if len(voices) != 5 {
		t.Fatalf("parseVoiceList() returned %d voices, want 5", len(voices))
	}

	mbrola := voices[3]
	if mbrola.ID != "mb-us1" || mbrola.Name != "en-us-mbrola-1" || mbrola.Language != "en-us" {
		t.Errorf("unexpected voice: %+v", mbrola)
	}
}

func TestSelectVoice(t *testing.T) {
	voices := parseVoiceList(sampleVoiceList)

	tests := []struct {
		name   string
		voices []Voice
		tag    string
		vendor string
		wantID string
		wantOK bool
	}{
		{
			name:   "exact tag with vendor",
			voices: voices,
			tag:    "en-US",
			vendor: "mbrola",
			wantID: "mb-us1",
			wantOK: true,
		},
		{
			name:   "exact tag without vendor match",
			voices: voices,
			tag:    "en-US",
			vendor: "Google",
			wantID: "en-US",
			wantOK: true,
		},
		{
			name:   "base language fallback",
			voices: []Voice{{ID: "en", Name: "English_(Great_Britain)", Language: "en-gb"}},
			tag:    "en-US",
			wantID: "en",
			wantOK: true,
		},
		{
			name:   "Chinese prefix fallback",
			voices: voices,
			tag:    "zh-CN",
			wantID: "zh-TW",
			wantOK: true,
		},
		{
			name:   "no voice for language",
			voices: []Voice{{ID: "af", Language: "af"}},
			tag:    "zh-CN",
			wantOK: false,
		},
		{
			name:   "empty list",
			voices: nil,
			tag:    "en-US",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := SelectVoice(tt.voices, tt.tag, tt.vendor)
			if ok != tt.wantOK {
				t.Fatalf("SelectVoice() ok = %v, want %v", ok, tt.wantOK)
			}
			if v.ID != tt.wantID {
				t.Errorf("SelectVoice() = %q, want %q", v.ID, tt.wantID)
			}
		})
	}
}
