// Package gateway is the only part of vocabbuilder that talks to an AI
// backend. Every operation builds its prompt through the prompt package,
// sends exactly one request and parses the reply into content types.
//
// Failures are not retried. Transport, authentication, parsing and shape
// errors are logged and reported as ErrNoResult; a missing API key is
// reported as ErrMissingAPIKey before any request is made. The gateway never
// persists anything.
package gateway
