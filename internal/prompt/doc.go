// Package prompt builds the instructions sent to the AI backend. Each study
// language has a Strategy, a fixed set of pure template functions, selected
// with GetStrategy. Templates never perform I/O.
//
// Explanations and feedback are always requested in Vietnamese, regardless
// of the language being studied.
package prompt
