package prompt

import (
	"fmt"

	"codeberg.org/snonux/vocabbuilder/internal/content"
)

var englishStrategy = Strategy{
	Language: content.English,

	Vocabulary: func(topic, level string, count int) string {
		return normalize(fmt.Sprintf(`
You are an expert English teacher creating vocabulary lists for Vietnamese students.
Produce EXACTLY one JSON value and NOTHING ELSE: a JSON array containing exactly %d objects.

Requirements:
1. Output must be a single valid JSON array.
2. Array length: %d.
3. JSON Structure:
   - "word": string (English word)
   - "pos": string (part of speech)
   - "ipa": string (IPA pronunciation)
   - "meaning": string (Vietnamese meaning)
   - "example": string (English sentence)
   - "en_definition": string (Short English definition)
   - "vi_example": string (Vietnamese translation of example, keyword replaced with '_______')
   - "vi_example_full": string (Full Vietnamese translation)
   - "vi_definition": string (Vietnamese definition)

Context: CEFR Level %s, Topic %q.
`, count, count, level, topic))
	},

	Podcast: func(topic string, length int, words []string) string {
		return normalize(fmt.Sprintf(`
You are an experienced English podcast scriptwriter.
Write a natural English podcast script about %q, around %d words.
Include these words naturally %s.
Output ONLY the script text.
`, topic, length, markerInstruction(words)))
	},

	TestPart1: func(topic string, count int, words []string, level string) string {
		return normalize(fmt.Sprintf(`
Role: IELTS Speaking Part 1 Examiner.
Task: Generate exactly %d Q&A pairs.
Topic: %q. Level: %s.
Output: JSON array of { "question": string, "answer": string }.
Constraint: Answers MUST use these words %s.
`, count, topic, level, markerInstruction(words)))
	},

	TestPart2: func(topic string, words []string, level string) string {
		return normalize(fmt.Sprintf(`
Role: IELTS Speaking Part 2 Examiner.
Task: Generate a Cue Card and Sample Answer.
Topic: %q. Level: %s.
Output: JSON object { "topic": string, "cue_card": string[], "answer": string }.
Constraint: Answer MUST use these words %s.
`, topic, level, markerInstruction(words)))
	},

	SpeakingPractice: func(topic string, words []string, count int, level string) string {
		return normalize(fmt.Sprintf(`
Role: English Conversation Coach. Topic: %q. Level: %s.
Task: Generate %d practice questions.
Output: JSON array { "question": string, "suggested_words": string[] }.
Select suggested_words from: %s.
`, topic, level, count, QuoteWords(words)))
	},

	SpeakingCheck: func(question, answer string) string {
		return normalize(fmt.Sprintf(`
Role: English Teacher.
Task: Evaluate student answer in %s.
Question: %q
Answer: %q
Provide: 1. Correction, 2. Improvements, 3. Friendly tone.
`, FeedbackLanguage, question, answer))
	},

	SpeakingEvaluation: func(part int, topic, level, question, answer string) string {
		return normalize(fmt.Sprintf(`
Role: IELTS Examiner. Part: %d.
Topic: %q. Question: %q. Answer: %q. Level: %s.
Task: Provide detailed feedback in %s (Fluency, Vocabulary, Grammar).
`, part, topic, question, answer, level, FeedbackLanguage))
	},

	SpeakingSuggestions: func(topic, level string) string {
		return normalize(fmt.Sprintf(`
Role: English Teacher. Topic: %q. Level: %s.
Task: Generate structured conversation phrases.
Output: JSON array { "category": "Vietnamese label", "phrases": [{"en": "English phrase", "vi": "Vietnamese translation"}] }.
`, topic, level))
	},

	ExampleSentences: func(word, level string) string {
		return normalize(fmt.Sprintf(`
Generate %d example sentences for %q in English (Level %s).
Output: JSON array { "en": "English sentence", "vi": "Vietnamese translation" }.
`, ExampleSentenceCount, word, level))
	},
}
