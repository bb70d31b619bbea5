// Package glossary maps normalized phrase words to calendar meanings. A table
// holds the vocabulary for one language; lookups accept unambiguous prefixes
// so "tomo" finds tomorrow while "t" matches nothing.
package glossary

import (
	"fmt"
	"sort"
	"strings"

	"soonish/pkg/future"
)

// minPrefixLen is the shortest abbreviation a lookup will accept.
const minPrefixLen = 3

// Kind classifies what a glossary entry contributes to a phrase.
type Kind int

const (
	KindSpecial Kind = iota
	KindWeekday
	KindMonth
	KindHour
	KindMinute
	KindDay
	KindRelDays
	KindRelWeeks
	KindRelMonths
	KindRelYears
)

var kindNames = map[Kind]string{
	KindSpecial:   "special",
	KindWeekday:   "weekday",
	KindMonth:     "month",
	KindHour:      "hour",
	KindMinute:    "minute",
	KindDay:       "day",
	KindRelDays:   "rel_days",
	KindRelWeeks:  "rel_weeks",
	KindRelMonths: "rel_months",
	KindRelYears:  "rel_years",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name from a glossary file back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, s := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown glossary kind %q", name)
}

// Result is one calendar meaning attached to a word. For KindSpecial the
// value is an int-coded future.Special; for KindWeekday it is the weekday
// with Monday as 0; for KindMonth it is 1-12.
type Result struct {
	Kind  Kind
	Value int
}

// Results is what a single word contributes. Most words carry one Result;
// compound entries like "later tonight" carry two.
type Results []Result

// Table is the vocabulary of one language. Keys are normalized words or
// space-joined word runs.
type Table struct {
	Language string
	entries  map[string]Results

	// keys sorted once for deterministic prefix scans and suggestions.
	sorted []string
}

// New builds a Table from an entry map. The map is copied.
func New(language string, entries map[string]Results) *Table {
	t := &Table{
		Language: language,
		entries:  make(map[string]Results, len(entries)),
	}
	for w, rs := range entries {
		t.entries[w] = rs
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.sorted = make([]string, 0, len(t.entries))
	for w := range t.entries {
		t.sorted = append(t.sorted, w)
	}
	sort.Strings(t.sorted)
}

// Len reports the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Words returns all entry keys in sorted order. The slice is shared; callers
// must not modify it.
func (t *Table) Words() []string { return t.sorted }

// Match resolves a normalized word run against the table. An exact entry
// wins. Otherwise the word is treated as a prefix: it must be at least three
// characters long, and every entry it prefixes must carry the same results,
// or the lookup reports nothing.
func (t *Table) Match(word string) (Results, bool) {
	if rs, ok := t.entries[word]; ok {
		return rs, true
	}
	if len(word) < minPrefixLen {
		return nil, false
	}

	var found Results
	for _, key := range t.sorted {
		if !strings.HasPrefix(key, word) {
			continue
		}
		if found == nil {
			found = t.entries[key]
			continue
		}
		if !sameResults(found, t.entries[key]) {
			return nil, false
		}
	}
	if found == nil {
		return nil, false
	}
	return found, true
}

// Month resolves a word run as a month name and reports the month number
// 1-12. Non-month meanings are ignored.
func (t *Table) Month(word string) (int, bool) {
	rs, ok := t.Match(word)
	if !ok {
		return 0, false
	}
	for _, r := range rs {
		if r.Kind == KindMonth {
			return r.Value, true
		}
	}
	return 0, false
}

// Completions returns every entry key the given prefix could begin, in sorted
// order. Unlike Match it has no ambiguity rule: it feeds suggestion lists.
func (t *Table) Completions(prefix string) []string {
	var out []string
	for _, key := range t.sorted {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out
}

// sameResults reports whether two result sets carry the same meanings,
// ignoring order.
func sameResults(a, b Results) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, ra := range a {
		for i, rb := range b {
			if !used[i] && ra == rb {
				used[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// special is shorthand for a single-result special entry.
func special(s future.Special) Results {
	return Results{{Kind: KindSpecial, Value: int(s)}}
}

func one(k Kind, v int) Results {
	return Results{{Kind: k, Value: v}}
}
