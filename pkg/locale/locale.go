// Package locale resolves the month/day field ordering to assume when a
// phrase carries an ambiguous numeric date like "05/06".
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Profile says which positions month and day take in an ambiguous numeric
// date. Positions are zero-based over the numeric date segments.
type Profile struct {
	MonthPosition int
	DayPosition   int
}

// The two orderings in use. Year-first regions still write month before day,
// so they share the month-first profile.
var (
	MonthFirst = Profile{MonthPosition: 0, DayPosition: 1}
	DayFirst   = Profile{MonthPosition: 1, DayPosition: 0}
)

// Detect resolves the profile from the POSIX locale environment, checking
// LC_ALL, then LC_TIME, then LANG. Unset or unparseable values fall back to
// month-first.
func Detect() Profile {
	raw := os.Getenv("LC_ALL")
	if raw == "" {
		raw = os.Getenv("LC_TIME")
	}
	if raw == "" {
		raw = os.Getenv("LANG")
	}
	return FromTag(raw)
}

// FromTag resolves the profile for a POSIX locale string ("en_US.UTF-8") or
// BCP 47 tag ("en-GB").
func FromTag(raw string) Profile {
	// Strip encoding suffix: "en_US.UTF-8" becomes "en_US".
	if idx := strings.IndexByte(raw, '.'); idx != -1 {
		raw = raw[:idx]
	}
	// POSIX uses underscore, BCP 47 uses dash.
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, _ := language.Parse(raw)
	if tag == language.Und {
		return MonthFirst
	}

	region, _ := tag.Region()
	if p, ok := regionProfiles[region.String()]; ok {
		return p
	}

	base, _ := tag.Base()
	if p, ok := languageProfiles[base.String()]; ok {
		return p
	}
	return DayFirst
}

// regionProfiles maps ISO 3166-1 region codes to orderings. Regions writing
// year-month-day keep month ahead of day.
var regionProfiles = map[string]Profile{
	"US": MonthFirst,
	"PH": MonthFirst,
	"JP": MonthFirst,
	"CN": MonthFirst,
	"KR": MonthFirst,
	"TW": MonthFirst,

	"GB": DayFirst,
	"AU": DayFirst,
	"NZ": DayFirst,
	"IE": DayFirst,
	"ZA": DayFirst,
	"IN": DayFirst,
	"FR": DayFirst,
	"ES": DayFirst,
	"IT": DayFirst,
	"PT": DayFirst,
	"BR": DayFirst,
	"NL": DayFirst,
	"BE": DayFirst,
	"MX": DayFirst,
	"AR": DayFirst,
	"CL": DayFirst,
	"CO": DayFirst,
	"DE": DayFirst,
	"AT": DayFirst,
	"CH": DayFirst,
}

// languageProfiles provides fallbacks when the region is unknown.
var languageProfiles = map[string]Profile{
	"en": MonthFirst,
	"ja": MonthFirst,
	"zh": MonthFirst,
	"ko": MonthFirst,
	"es": DayFirst,
	"fr": DayFirst,
	"de": DayFirst,
	"it": DayFirst,
	"pt": DayFirst,
	"nl": DayFirst,
}
