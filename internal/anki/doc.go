// Package anki exports vocabulary sets as CSV files that Anki can import,
// optionally with a folder of pronunciation audio.
package anki
