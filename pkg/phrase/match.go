package phrase

import (
	"strings"

	"soonish/pkg/future"
	"soonish/pkg/glossary"
)

// maxWindow is the longest glossary trigger measured in tokens.
const maxWindow = 3

// matchPhrases runs the glossary over the token stream, preferring 3-token
// windows, then 2, then 1, scanning left to right. Matched tokens are
// consumed; what is left over is returned for the numeric pass.
func matchPhrases(tbl *glossary.Table, tokens []string) (found []glossary.Results, leftover []string) {
	words := make([]string, len(tokens))
	copy(words, tokens)

	for size := maxWindow; size >= 1; size-- {
		consumed := make([]bool, len(words))
		for i := 0; i+size <= len(words); i++ {
			if anyConsumed(consumed[i : i+size]) {
				continue
			}
			rs, ok := tbl.Match(strings.Join(words[i:i+size], " "))
			if !ok {
				continue
			}
			found = append(found, rs)
			for j := i; j < i+size; j++ {
				consumed[j] = true
			}
		}
		words = compact(words, consumed)
	}
	return found, words
}

func anyConsumed(window []bool) bool {
	for _, c := range window {
		if c {
			return true
		}
	}
	return false
}

func compact(words []string, consumed []bool) []string {
	out := words[:0]
	for i, w := range words {
		if !consumed[i] {
			out = append(out, w)
		}
	}
	return out
}

// applyResults folds glossary meanings into the spec. A second special or a
// second relative offset of the same unit makes the phrase unintelligible.
func applyResults(spec *future.Spec, found []glossary.Results) error {
	for _, rs := range found {
		for _, r := range rs {
			switch r.Kind {
			case glossary.KindSpecial:
				if spec.Special != future.SpecialNone {
					return future.ErrNoResult
				}
				spec.Special = future.Special(r.Value)
			case glossary.KindWeekday:
				spec.Weekday = future.N(r.Value)
			case glossary.KindMonth:
				spec.Month = future.N(r.Value)
			case glossary.KindHour:
				spec.Hour = future.N(r.Value)
			case glossary.KindMinute:
				spec.Minute = future.N(r.Value)
			case glossary.KindDay:
				spec.Day = future.N(r.Value)
			case glossary.KindRelDays:
				if spec.Days != 0 {
					return future.ErrNoResult
				}
				spec.Days = r.Value
			case glossary.KindRelWeeks:
				if spec.Weeks != 0 {
					return future.ErrNoResult
				}
				spec.Weeks = r.Value
			case glossary.KindRelMonths:
				if spec.Months != 0 {
					return future.ErrNoResult
				}
				spec.Months = r.Value
			case glossary.KindRelYears:
				if spec.Years != 0 {
					return future.ErrNoResult
				}
				spec.Years = r.Value
			}
		}
	}
	return nil
}
