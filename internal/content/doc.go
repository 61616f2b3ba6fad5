// Package content defines the learning material vocabbuilder generates and
// persists: vocabulary items and sets, speaking suggestion sets, and the
// session-only practice content derived from an active vocabulary set.
// JSON field names are the persistence format and must stay stable.
package content
