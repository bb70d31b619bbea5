package phrase

import (
	"strconv"

	"soonish/pkg/future"
)

// durationWindow bounds how far past the trigger the extractor looks.
const durationWindow = 6

// unit identifies one duration unit word.
type unit int

const (
	unitSeconds unit = iota
	unitMinutes
	unitHours
	unitDays
	unitWeeks
	unitFortnights
	unitMonths
	unitQuarters
	unitYears
)

type durationVocab struct {
	triggers map[string]bool
	units    map[string]unit
	numerals map[string]int
}

var durationVocabs = map[string]durationVocab{
	"en": {
		triggers: map[string]bool{"in": true, "within": true},
		units: map[string]unit{
			"second": unitSeconds, "seconds": unitSeconds, "sec": unitSeconds, "secs": unitSeconds,
			"minute": unitMinutes, "minutes": unitMinutes, "min": unitMinutes, "mins": unitMinutes,
			"hour": unitHours, "hours": unitHours, "hr": unitHours, "hrs": unitHours,
			"day": unitDays, "days": unitDays,
			"week": unitWeeks, "weeks": unitWeeks,
			"fortnight": unitFortnights, "fortnights": unitFortnights,
			"month": unitMonths, "months": unitMonths,
			"quarter": unitQuarters, "quarters": unitQuarters,
			"year": unitYears, "years": unitYears,
		},
		numerals: map[string]int{"a": 1, "an": 1, "one": 1, "two": 2, "three": 3,
			"four": 4, "five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10},
	},
	"es": {
		triggers: map[string]bool{"en": true, "dentro": true},
		units: map[string]unit{
			"segundo": unitSeconds, "segundos": unitSeconds,
			"minuto": unitMinutes, "minutos": unitMinutes,
			"hora": unitHours, "horas": unitHours,
			"dia": unitDays, "dias": unitDays,
			"semana": unitWeeks, "semanas": unitWeeks,
			"quincena": unitFortnights, "quincenas": unitFortnights,
			"mes": unitMonths, "meses": unitMonths,
			"trimestre": unitQuarters, "trimestres": unitQuarters,
			"ano": unitYears, "anos": unitYears,
		},
		numerals: map[string]int{"un": 1, "una": 1, "uno": 1, "dos": 2, "tres": 3,
			"cuatro": 4, "cinco": 5, "seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10},
	},
}

func vocabFor(language string) durationVocab {
	if v, ok := durationVocabs[language]; ok {
		return v
	}
	return durationVocabs["en"]
}

// extractDuration scans tokens for a relative-duration reading: an "in"-class
// trigger word, or a magnitude immediately followed by a unit word. When one
// is found it fills the spec's offsets from a bounded window after the
// trigger and reports true, which turns the rest of the parse off.
func extractDuration(spec *future.Spec, tokens []string, language string) bool {
	vocab := vocabFor(language)

	trigger := -1
	for i, tok := range tokens {
		if vocab.triggers[tok] {
			trigger = i
			break
		}
		if _, ok := vocab.units[tok]; ok && i > 0 {
			if _, isNum := magnitude(tokens[i-1], vocab); isNum {
				trigger = i - 1
				break
			}
		}
	}
	if trigger < 0 {
		return false
	}

	end := trigger + durationWindow
	if end > len(tokens) {
		end = len(tokens)
	}

	timeUnits := false
	matched := false
	for i := trigger + 1; i < end; i++ {
		u, ok := vocab.units[tokens[i]]
		if !ok {
			continue
		}
		n, ok := magnitude(tokens[i-1], vocab)
		if !ok {
			continue
		}
		matched = true
		switch u {
		case unitSeconds:
			spec.Seconds += n
			timeUnits = true
		case unitMinutes:
			spec.Minutes += n
			timeUnits = true
		case unitHours:
			spec.Hours += n
			timeUnits = true
		case unitDays:
			spec.Days += n
		case unitWeeks:
			spec.Weeks += n
		case unitFortnights:
			spec.Weeks += 2 * n
		case unitMonths:
			spec.Months += n
		case unitQuarters:
			spec.Quarters += n
		case unitYears:
			spec.Years += n
		}
	}
	if !matched {
		return false
	}

	// An offset reading overrides whatever absolute fields the glossary pass
	// picked up from the same words.
	spec.Special = future.SpecialNone
	spec.Weekday = future.Opt{}
	spec.Day = future.Opt{}
	spec.Month = future.Opt{}
	spec.Year = future.Opt{}
	spec.Quarter = future.Opt{}

	// Date-granular offsets land at the default hour; time-granular ones keep
	// the reference's own clock so "in 3 hours" counts from now.
	if !timeUnits {
		if !spec.Hour.Valid {
			spec.Hour = future.N(future.DefaultHour)
		}
		if !spec.Minute.Valid {
			spec.Minute = future.N(0)
		}
		if !spec.Second.Valid {
			spec.Second = future.N(0)
		}
	}
	return true
}

// magnitude reads a token as an offset amount, accepting digit strings and
// small word numerals ("a", "an", "two").
func magnitude(tok string, vocab durationVocab) (int, bool) {
	if n, ok := vocab.numerals[tok]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
