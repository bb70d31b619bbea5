// Package tzindex resolves free-text timezone mentions ("tokyo", "pst",
// "america/new_york") to IANA locations.
package tzindex

import (
	"strings"
	"sync"
	"time"
)

// entry is one searchable name bound to an IANA zone id.
type entry struct {
	name string // normalized, lowercase, spaces for separators
	zone string
}

// Catalog indexes timezone names for substring lookup.
type Catalog struct {
	entries []entry

	mu     sync.Mutex
	loaded map[string]*time.Location
}

// Default returns the built-in catalog of IANA ids, major cities, and common
// abbreviations.
var Default = sync.OnceValue(func() *Catalog {
	return NewCatalog(builtinNames)
})

// NewCatalog builds a catalog from name-to-zone pairs. Names are normalized
// to lowercase with separators flattened to spaces.
func NewCatalog(names map[string]string) *Catalog {
	c := &Catalog{
		entries: make([]entry, 0, len(names)),
		loaded:  make(map[string]*time.Location),
	}
	for name, zone := range names {
		c.entries = append(c.entries, entry{name: normalizeName(name), zone: zone})
	}
	return c
}

// FindByName resolves text to a location. Every catalog name containing the
// normalized text as a substring is collected; the lookup succeeds only when
// all matches share a single UTC offset at the reference instant, and then
// returns the first match. Text shorter than three characters never matches.
func (c *Catalog) FindByName(text string, ref time.Time) (*time.Location, bool) {
	needle := normalizeName(text)
	if len(needle) < 3 {
		return nil, false
	}

	// An exact name wins outright, so "mst" is not drowned out by the
	// substring it forms inside "amsterdam".
	for _, e := range c.entries {
		if e.name == needle {
			if loc, err := c.load(e.zone); err == nil {
				return loc, true
			}
		}
	}

	var (
		first   *time.Location
		offset  int
		matched bool
	)
	for _, e := range c.entries {
		if !strings.Contains(e.name, needle) {
			continue
		}
		loc, err := c.load(e.zone)
		if err != nil {
			// Zone missing from the host database: skip the entry.
			continue
		}
		_, off := ref.In(loc).Zone()
		if !matched {
			first, offset, matched = loc, off, true
			continue
		}
		if off != offset {
			return nil, false
		}
	}
	return first, matched
}

func (c *Catalog) load(zone string) (*time.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.loaded[zone]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	c.loaded[zone] = loc
	return loc, nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// builtinNames covers the IANA ids for the zones people actually name in a
// reminder, plus city aliases and fixed abbreviations. Abbreviations that
// straddle several regions (CST, IST) are deliberately absent.
var builtinNames = map[string]string{
	// IANA ids index themselves.
	"America/New_York":    "America/New_York",
	"America/Chicago":     "America/Chicago",
	"America/Denver":      "America/Denver",
	"America/Los_Angeles": "America/Los_Angeles",
	"America/Anchorage":   "America/Anchorage",
	"America/Sao_Paulo":   "America/Sao_Paulo",
	"America/Mexico_City": "America/Mexico_City",
	"America/Bogota":      "America/Bogota",
	"America/Santiago":    "America/Santiago",
	"Europe/London":       "Europe/London",
	"Europe/Paris":        "Europe/Paris",
	"Europe/Berlin":       "Europe/Berlin",
	"Europe/Madrid":       "Europe/Madrid",
	"Europe/Rome":         "Europe/Rome",
	"Europe/Amsterdam":    "Europe/Amsterdam",
	"Europe/Moscow":       "Europe/Moscow",
	"Europe/Istanbul":     "Europe/Istanbul",
	"Africa/Cairo":        "Africa/Cairo",
	"Africa/Lagos":        "Africa/Lagos",
	"Africa/Johannesburg": "Africa/Johannesburg",
	"Asia/Dubai":          "Asia/Dubai",
	"Asia/Karachi":        "Asia/Karachi",
	"Asia/Kolkata":        "Asia/Kolkata",
	"Asia/Dhaka":          "Asia/Dhaka",
	"Asia/Bangkok":        "Asia/Bangkok",
	"Asia/Singapore":      "Asia/Singapore",
	"Asia/Hong_Kong":      "Asia/Hong_Kong",
	"Asia/Shanghai":       "Asia/Shanghai",
	"Asia/Tokyo":          "Asia/Tokyo",
	"Asia/Seoul":          "Asia/Seoul",
	"Australia/Sydney":    "Australia/Sydney",
	"Australia/Perth":     "Australia/Perth",
	"Pacific/Auckland":    "Pacific/Auckland",
	"UTC":                 "UTC",

	// City and region aliases.
	"nyc":           "America/New_York",
	"san francisco": "America/Los_Angeles",
	"seattle":       "America/Los_Angeles",
	"buenos aires":  "America/Argentina/Buenos_Aires",
	"mumbai":        "Asia/Kolkata",
	"delhi":         "Asia/Kolkata",
	"beijing":       "Asia/Shanghai",
	"melbourne":     "Australia/Melbourne",

	// Fixed abbreviations.
	"est":  "America/New_York",
	"edt":  "America/New_York",
	"cdt":  "America/Chicago",
	"mst":  "America/Denver",
	"mdt":  "America/Denver",
	"pst":  "America/Los_Angeles",
	"pdt":  "America/Los_Angeles",
	"gmt":  "Etc/GMT",
	"bst":  "Europe/London",
	"cet":  "Europe/Paris",
	"jst":  "Asia/Tokyo",
	"kst":  "Asia/Seoul",
	"aest": "Australia/Sydney",
	"hkt":  "Asia/Hong_Kong",
	"sgt":  "Asia/Singapore",
}
