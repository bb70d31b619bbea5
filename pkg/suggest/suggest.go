// Package suggest builds autocomplete candidates for partially typed date
// phrases by completing the last word against the glossary and keeping only
// the completions the interpreter can actually resolve.
package suggest

import (
	"sort"
	"strings"
	"time"

	"soonish/pkg/glossary"
	"soonish/pkg/phrase"
)

// DefaultLimit caps a suggestion list when the caller does not.
const DefaultLimit = 8

// Suggestion pairs a completed phrase with the moment it resolves to.
type Suggestion struct {
	Phrase string    `json:"phrase"`
	At     time.Time `json:"at"`
}

// Complete expands the last token of text against the glossary and resolves
// each candidate phrase at ref. Candidates that do not resolve to a future
// moment are dropped. Results are ordered by resolved moment, soonest first
// (ties broken by phrase), and capped at limit (DefaultLimit when limit <= 0).
func Complete(p *phrase.Interpreter, tbl *glossary.Table, text string, ref time.Time, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	tokens := phrase.Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	last := tokens[len(tokens)-1]
	head := strings.Join(tokens[:len(tokens)-1], " ")

	seen := make(map[string]bool)
	var out []Suggestion
	for _, word := range tbl.Completions(last) {
		candidate := word
		if head != "" {
			candidate = head + " " + word
		}
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		at, err := p.Interpret(candidate, ref)
		if err != nil {
			continue
		}
		out = append(out, Suggestion{Phrase: candidate, At: at})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}
		return out[i].Phrase < out[j].Phrase
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
