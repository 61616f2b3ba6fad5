package content

import (
	"fmt"
	"strings"
)

// Language is the language being studied. It is a closed set: only the
// constants below are valid values.
type Language string

const (
	English Language = "English"
	Chinese Language = "Chinese"
)

// Languages lists every supported study language
var Languages = []Language{English, Chinese}

// ParseLanguage converts user input into a Language
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en", "":
		return English, nil
	case "chinese", "zh", "mandarin":
		return Chinese, nil
	default:
		return "", fmt.Errorf("unsupported language: %q (use English or Chinese)", s)
	}
}

// OrDefault maps the empty value found in older persisted data to English
func (l Language) OrDefault() Language {
	if l == "" {
		return English
	}
	return l
}

// Tag returns the BCP 47 tag used for speech output
func (l Language) Tag() string {
	if l.OrDefault() == Chinese {
		return "zh-CN"
	}
	return "en-US"
}

func (l Language) String() string {
	return string(l.OrDefault())
}
