// Package processor contains the application logic of vocabbuilder. A
// Processor owns the single session state, sends AI requests through the
// gateway, feeds the results to the session reducer and persists collections
// through the store. It also drives the audio bridge for spoken output.
package processor
