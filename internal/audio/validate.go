package audio

import (
	"fmt"
	"strings"
	"unicode"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// ValidateText checks that text can be spoken in lang
func ValidateText(text string, lang content.Language) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if lang.OrDefault() != content.Chinese {
		return nil
	}

	for _, r := range text {
		if unicode.In(r, unicode.Han) {
			return nil
		}
	}
	return fmt.Errorf("text must contain Chinese characters")
}
