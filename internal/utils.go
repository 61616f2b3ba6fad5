package internal

import (
	"strings"
	"time"
	"unicode"
)

// NewSetIDAt returns the identifier of a set created at t: the creation
// time in epoch milliseconds. Ids double as the sort key of a bucket.
func NewSetIDAt(t time.Time) int64 {
	return t.UnixMilli()
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
