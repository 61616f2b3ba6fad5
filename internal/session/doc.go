// Package session holds the application state of one vocabbuilder session
// and the pure reducer that transitions it. Callers perform I/O (AI
// requests, persistence) and feed the outcome back as actions.
package session
