package content

// Level is a selectable proficiency level
type Level struct {
	Value string
	Label string
}

// TopicGroup is a labelled group of suggested topics
type TopicGroup struct {
	Label   string
	Options []string
}

// Topics is the suggested topic catalogue shown by the CLI
var Topics = []TopicGroup{
	{Label: "Academic & Roadmap", Options: []string{"HSK Standard Course", "University Life", "Education", "Exams & Studying", "Learning Languages"}},
	{Label: "Everyday life", Options: []string{"Personal Information", "Daily Routine", "Hobbies & Interests", "Friends", "Family", "Home & Accommodation", "Shopping", "Food & Cooking", "Clothes & Fashion", "Pets", "Travel Experience"}},
	{Label: "Work", Options: []string{"Jobs & Occupations", "Work Environment", "Office Culture", "Job Interviews", "Business", "Economy"}},
	{Label: "Society & People", Options: []string{"Culture & Traditions", "Festivals", "Social Problems", "Famous People", "Personality", "Relationships"}},
	{Label: "Science & Technology", Options: []string{"Technology", "Internet", "Smartphones", "Environment", "Health", "Science"}},
	{Label: "Advanced", Options: []string{"Politics", "History", "Literature", "Arts", "Philosophy", "Global Issues"}},
}

var englishLevels = []Level{
	{Value: "A1", Label: "A1 (Beginner)"},
	{Value: "A2", Label: "A2 (Elementary)"},
	{Value: "B1", Label: "B1 (Intermediate)"},
	{Value: "B2", Label: "B2 (Upper Intermediate)"},
	{Value: "C1", Label: "C1 (Advanced)"},
	{Value: "C2", Label: "C2 (Proficiency)"},
}

var chineseLevels = []Level{
	{Value: "HSK 1", Label: "HSK 1 (150 words)"},
	{Value: "HSK 2", Label: "HSK 2 (300 words)"},
	{Value: "HSK 3", Label: "HSK 3 (600 words)"},
	{Value: "HSK 4", Label: "HSK 4 (1200 words)"},
	{Value: "HSK 5", Label: "HSK 5 (2500 words)"},
	{Value: "HSK 6", Label: "HSK 6 (5000+ words)"},
}

// Counts are the vocabulary set sizes offered to the user
var Counts = []int{10, 20, 30}

// Levels returns the proficiency scale of a language
func Levels(lang Language) []Level {
	if lang.OrDefault() == Chinese {
		return chineseLevels
	}
	return englishLevels
}

// DefaultLevel is the level preselected for a language
func DefaultLevel(lang Language) string {
	if lang.OrDefault() == Chinese {
		return "HSK 1"
	}
	return "B1"
}

// IsValidLevel reports whether level belongs to the language's scale
func IsValidLevel(lang Language, level string) bool {
	for _, l := range Levels(lang) {
		if l.Value == level {
			return true
		}
	}
	return false
}
