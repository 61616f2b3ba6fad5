// Package quiz implements the local practice games played against the
// active vocabulary set: multiple choice quizzes, word/meaning matching and
// spelling drills. Nothing here talks to an AI backend.
package quiz
