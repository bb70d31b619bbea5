// Package phrase turns natural-language date phrases like "next friday 3pm"
// or "in 2 weeks" into concrete future moments. The pipeline normalizes the
// text, consumes glossary words, reads the numeric fragments that remain,
// and hands the assembled field set to the resolution engine. Anything the
// pipeline cannot map to a strictly-future moment comes back as
// future.ErrNoResult.
package phrase

import (
	"fmt"
	"strings"
	"time"

	"soonish/pkg/future"
	"soonish/pkg/glossary"
	"soonish/pkg/locale"
	"soonish/pkg/tzindex"
)

// Interpreter holds the language and locale context a parse runs under. It
// is immutable after construction and safe for concurrent use.
type Interpreter struct {
	table   *glossary.Table
	profile locale.Profile
	zones   *tzindex.Catalog
	refZone *time.Location
}

// Option customizes an Interpreter.
type Option func(*Interpreter)

// WithTable substitutes a custom glossary table, e.g. one loaded from disk.
func WithTable(tbl *glossary.Table) Option {
	return func(p *Interpreter) { p.table = tbl }
}

// WithProfile fixes the month/day field order instead of detecting it from
// the environment.
func WithProfile(profile locale.Profile) Option {
	return func(p *Interpreter) { p.profile = profile }
}

// WithZones substitutes the timezone catalog used for free-text zone
// mentions.
func WithZones(c *tzindex.Catalog) Option {
	return func(p *Interpreter) { p.zones = c }
}

// WithRefZone sets the zone a zone-naive reference moment is assumed to be
// in.
func WithRefZone(loc *time.Location) Option {
	return func(p *Interpreter) { p.refZone = loc }
}

// New builds an Interpreter for a language code. The language must have a
// builtin glossary unless WithTable overrides it.
func New(language string, opts ...Option) (*Interpreter, error) {
	p := &Interpreter{
		table:   glossary.Builtin(language),
		profile: locale.Detect(),
		zones:   tzindex.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.table == nil {
		return nil, fmt.Errorf("no glossary for language %q", language)
	}
	return p, nil
}

// Parse runs the text through the pipeline and returns the field
// specification it implies, without resolving it to a moment.
func (p *Interpreter) Parse(text string, ref time.Time) (future.Spec, error) {
	spec := future.Spec{RefZone: p.refZone}

	tokens := Tokens(text)
	found, leftover := matchPhrases(p.table, tokens)
	if err := applyResults(&spec, found); err != nil {
		return future.Spec{}, err
	}

	// An offset reading ("in 2 weeks") claims the rest of the sentence; the
	// numeric extractors only run when it does not trigger.
	if !extractDuration(&spec, leftover, p.table.Language) {
		rest, err := extractNumeric(&spec, leftover, p.table, p.profile, ref)
		if err != nil {
			return future.Spec{}, err
		}
		p.resolveZone(&spec, rest, ref)
	}
	return spec, nil
}

// Interpret maps text to the nearest strictly-future moment it describes.
func (p *Interpreter) Interpret(text string, ref time.Time) (time.Time, error) {
	spec, err := p.Parse(text, ref)
	if err != nil {
		return time.Time{}, err
	}
	return future.Resolve(spec, ref)
}

// resolveZone tries the words nothing else consumed as a timezone mention:
// first joined together ("new york"), then one by one. Words that name no
// zone are ignored.
func (p *Interpreter) resolveZone(spec *future.Spec, rest []string, ref time.Time) {
	if len(rest) == 0 || p.zones == nil {
		return
	}
	if len(rest) > 1 {
		if loc, ok := p.zones.FindByName(strings.Join(rest, " "), ref); ok {
			spec.Zone = loc
			return
		}
	}
	for _, word := range rest {
		if loc, ok := p.zones.FindByName(word, ref); ok {
			spec.Zone = loc
			return
		}
	}
}
