// Package models lists the AI models available to the configured API key
// and groups them by what vocabbuilder can use them for.
package models
