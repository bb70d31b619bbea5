// Package future assembles sparse date/time constraints into the nearest
// strictly-future calendar moment. It is purely functional: every resolution
// is a deterministic transformation of a Spec plus an explicit reference
// moment, with no clock reads and no shared state.
package future

import (
	"errors"
	"time"
)

// ErrNoResult is the single failure signal of the engine. Every cause of
// failure (ambiguity upstream, out-of-range fields, a weekday that never
// matches, a moment that is not after the reference) collapses to it.
var ErrNoResult = errors.New("future: no result")

const (
	// DefaultHour is the start-of-day hour applied when no time of day is
	// requested.
	DefaultHour = 8

	// laterHours is the offset applied by the LATER anchor.
	laterHours = 4

	// tonightHour is the wall-clock hour of TONIGHT, and its cutoff: once the
	// reference is at or past it, TONIGHT has no answer.
	tonightHour = 20

	// searchYearCeiling bounds weekday searches that carry no explicit year.
	// A valid (weekday, day, month) combination recurs well within this span.
	searchYearCeiling = 50
)

// Opt is an optional integer field, following the database/sql Null* shape.
type Opt struct {
	N     int
	Valid bool
}

// N returns an Opt holding n.
func N(n int) Opt {
	return Opt{N: n, Valid: true}
}

// Or returns the held value, or def when unset.
func (o Opt) Or(def int) int {
	if o.Valid {
		return o.N
	}
	return def
}

// Special is a named anchor that resolves through its own fixed formula
// instead of general field filling.
type Special int

const (
	SpecialNone Special = iota
	Today
	Weekend
	Tonight
	Later
	LaterTonight
	Tomorrow
	NextWeek
	NextMonth
	NextQuarter
	NextYear
)

var specialNames = map[Special]string{
	Today:        "today",
	Weekend:      "weekend",
	Tonight:      "tonight",
	Later:        "later",
	LaterTonight: "later_tonight",
	Tomorrow:     "tomorrow",
	NextWeek:     "next_week",
	NextMonth:    "next_month",
	NextQuarter:  "next_quarter",
	NextYear:     "next_year",
}

func (s Special) String() string {
	if name, ok := specialNames[s]; ok {
		return name
	}
	return "none"
}

// ParseSpecial maps a tag name back to its Special. Used by glossary files.
func ParseSpecial(name string) (Special, bool) {
	for s, n := range specialNames {
		if n == name {
			return s, true
		}
	}
	return SpecialNone, false
}

// Spec is the sparse constraint set driving one resolution. Absolute fields
// (Weekday through Second) are optional; relative offsets default to zero.
// Special, non-zero offsets, and absolute fields are mutually exclusive
// resolution modes: the first one present, in that order, drives the
// computation.
type Spec struct {
	Weekday Opt // 0 = Monday .. 6 = Sunday
	Day     Opt // 1..31
	Month   Opt // 1..12
	Year    Opt
	Quarter Opt // 1..4
	Hour    Opt
	Minute  Opt
	Second  Opt

	Years    int
	Months   int
	Weeks    int
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
	Quarters int

	Special Special

	// Zone, when set, names the zone of the result. It relabels the resolved
	// wall clock without shifting it.
	Zone *time.Location

	// RefZone, when set, is the zone assumed for the reference moment: the
	// reference's wall-clock fields are reinterpreted in it before resolving.
	RefZone *time.Location
}

// hasOffsets reports whether any relative offset is non-zero.
func (s Spec) hasOffsets() bool {
	return s.Years != 0 || s.Months != 0 || s.Weeks != 0 || s.Days != 0 ||
		s.Hours != 0 || s.Minutes != 0 || s.Seconds != 0 || s.Quarters != 0
}

// empty reports whether nothing at all was requested.
func (s Spec) empty() bool {
	return s.Special == SpecialNone && !s.hasOffsets() &&
		!s.Weekday.Valid && !s.Day.Valid && !s.Month.Valid && !s.Year.Valid &&
		!s.Quarter.Valid && !s.Hour.Valid && !s.Minute.Valid && !s.Second.Valid
}
