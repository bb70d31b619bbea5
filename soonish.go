// Package soonish resolves natural-language date phrases like "next friday
// 3pm", "in 2 weeks", or "05/06/24" to the nearest strictly-future calendar
// moment. It re-exports the core types so most callers only need this
// package; the full pipeline lives under pkg/.
package soonish

import (
	"time"

	"soonish/pkg/future"
	"soonish/pkg/phrase"
)

// Spec is a sparse set of date/time field constraints.
type Spec = future.Spec

// Interpreter runs the full text-to-moment pipeline.
type Interpreter = phrase.Interpreter

// ErrNoResult is the single failure signal: the input cannot be mapped to a
// strictly-future moment.
var ErrNoResult = future.ErrNoResult

// Resolve computes the nearest moment strictly after ref consistent with
// spec.
func Resolve(spec Spec, ref time.Time) (time.Time, error) {
	return future.Resolve(spec, ref)
}

// Interpret parses text with the builtin glossary for language and resolves
// it against ref.
func Interpret(text, language string, ref time.Time) (time.Time, error) {
	p, err := phrase.New(language)
	if err != nil {
		return time.Time{}, err
	}
	return p.Interpret(text, ref)
}
