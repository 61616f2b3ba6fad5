package prompt

import (
	"fmt"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

// The Chinese templates keep the "en" key for Chinese text so responses
// decode into the same types as English ones.
var chineseStrategy = Strategy{
	Language: content.Chinese,

	Vocabulary: func(topic, level string, count int) string {
		return normalize(fmt.Sprintf(`
You are an expert Chinese (Mandarin) teacher creating vocabulary lists for Vietnamese students.
Produce EXACTLY one JSON value and NOTHING ELSE: a JSON array containing exactly %d objects.

Requirements:
1. Output must be a single valid JSON array.
2. Array length: %d.
3. JSON Structure:
   - "word": string (Chinese Characters / Hanzi)
   - "pos": string (Part of speech)
   - "ipa": string (Pinyin with tone marks)
   - "meaning": string (Vietnamese meaning)
   - "example": string (Chinese sentence, Simplified Chinese)
   - "en_definition": string (Definition in Chinese)
   - "vi_example": string (Vietnamese translation, keyword replaced with '_______')
   - "vi_example_full": string (Full Vietnamese translation)
   - "vi_definition": string (Vietnamese definition)

Context: HSK Level %s, Topic %q.
IMPORTANT: Ideally pick vocabulary from the official HSK list if the topic is generic.
`, count, count, level, topic))
	},

	Podcast: func(topic string, length int, words []string) string {
		return normalize(fmt.Sprintf(`
You are a Chinese podcast scriptwriter.
Write a script in Simplified Chinese about %q, around %d words.
Use Pinyin in parentheses for difficult words.
Include these words naturally %s.
Output ONLY the script text.
`, topic, length, markerInstruction(words)))
	},

	TestPart1: func(topic string, count int, words []string, level string) string {
		return normalize(fmt.Sprintf(`
Role: HSK Speaking (Introduction) Examiner.
Task: Generate exactly %d Q&A pairs.
Topic: %q. Level: %s.
Output: JSON array { "question": string, "answer": string }.
Constraint: Answers MUST use these words %s.
`, count, topic, level, markerInstruction(words)))
	},

	TestPart2: func(topic string, words []string, level string) string {
		return normalize(fmt.Sprintf(`
Role: HSK Speaking (Monologue) Examiner.
Task: Generate a Topic/Cue and Sample Answer.
Topic: %q. Level: %s.
Output: JSON object { "topic": string, "cue_card": string[], "answer": string }.
Constraint: Answer MUST use these words %s.
`, topic, level, markerInstruction(words)))
	},

	SpeakingPractice: func(topic string, words []string, count int, level string) string {
		return normalize(fmt.Sprintf(`
Role: Chinese Conversation Coach. Topic: %q. Level: %s.
Task: Generate %d practice questions in Chinese.
Output: JSON array { "question": string, "suggested_words": string[] }.
Select suggested_words from: %s.
`, topic, level, count, QuoteWords(words)))
	},

	SpeakingCheck: func(question, answer string) string {
		return normalize(fmt.Sprintf(`
Role: Chinese Teacher.
Task: Evaluate student answer in %s.
Question: %q
Answer: %q
Provide: 1. Correction (Hanzi/Pinyin), 2. Improvements, 3. Friendly tone.
`, FeedbackLanguage, question, answer))
	},

	// part is not used: the HSK oral exam has no numbered parts
	SpeakingEvaluation: func(_ int, topic, level, question, answer string) string {
		return normalize(fmt.Sprintf(`
Role: HSK Speaking Examiner.
Topic: %q. Question: %q. Answer: %q. Level: %s.
Task: Provide detailed feedback in %s (Fluency, Tones, Grammar).
`, topic, question, answer, level, FeedbackLanguage))
	},

	SpeakingSuggestions: func(topic, level string) string {
		return normalize(fmt.Sprintf(`
Role: Chinese Teacher. Topic: %q. Level: %s.
Task: Generate structured conversation phrases.
Output: JSON array { "category": "Vietnamese label", "phrases": [{"en": "Chinese phrase (Hanzi)", "vi": "Vietnamese translation"}] }.
NOTE: Keep key as "en" for the Chinese phrase to match the data structure.
`, topic, level))
	},

	ExampleSentences: func(word, level string) string {
		return normalize(fmt.Sprintf(`
Generate %d example sentences for %q in Chinese (Level %s).
Output: JSON array { "en": "Chinese sentence", "vi": "Vietnamese translation" }.
NOTE: Keep key as "en" for the Chinese sentence.
`, ExampleSentenceCount, word, level))
	},
}
