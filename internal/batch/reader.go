package batch

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TopicEntry is one vocabulary set to generate. Empty Level and zero Count
// mean "use the defaults".
type TopicEntry struct {
	Line  int
	Topic string
	Level string
	Count int
}

// ReadBatchFile reads topics from a file, one per line.
// Supports formats:
// - Topic only: "Family"
// - With level: "Family = B2"
// - With level and count: "Family = B2 = 20"
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]TopicEntry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseBatch(string(data))
}

// ParseBatch parses batch file content
func ParseBatch(text string) ([]TopicEntry, error) {
	var entries []TopicEntry

	for i, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "=")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("line %d: missing topic", i+1)
		}

		entry := TopicEntry{Line: i + 1, Topic: parts[0]}
		if len(parts) > 1 {
			entry.Level = parts[1]
		}
		if len(parts) > 2 && parts[2] != "" {
			count, err := strconv.Atoi(parts[2])
			if err != nil || count <= 0 {
				return nil, fmt.Errorf("line %d: invalid count %q", i+1, parts[2])
			}
			entry.Count = count
		}
		if len(parts) > 3 {
			return nil, fmt.Errorf("line %d: too many fields", i+1)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
