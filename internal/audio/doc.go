// Package audio plays vocabbuilder's speech output. It has two paths: AI
// voice audio arrives as base64 PCM, is wrapped in a WAV container and played
// by an external player; system voice output is spoken directly by espeak-ng.
package audio
