package phrase

import (
	"strconv"
	"strings"
	"time"

	"soonish/pkg/future"
	"soonish/pkg/glossary"
	"soonish/pkg/locale"
)

// yearWindow is how far ahead a token may name a year and still be read as
// one.
const yearWindow = 10

// numericState carries the context the bare-number rules need while the
// token scan walks left to right.
type numericState struct {
	spec    *future.Spec
	tbl     *glossary.Table
	profile locale.Profile
	ref     time.Time

	// dayToken is the index of the bare number that set Day, or -1. The
	// hour-minute reclassification only fires on the very next token.
	dayToken int
}

// extractNumeric runs the fixed recognizer order over the residual tokens
// and fills the spec's absolute fields. It reports the tokens nothing could
// consume. Any malformed or out-of-range numeric fragment fails the whole
// parse.
func extractNumeric(spec *future.Spec, tokens []string, tbl *glossary.Table, profile locale.Profile, ref time.Time) ([]string, error) {
	tokens = joinMeridiem(tokens)
	st := &numericState{spec: spec, tbl: tbl, profile: profile, ref: ref, dayToken: -1}

	var leftover []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case isOrdinalDay(tok):
			if err := st.takeOrdinal(tok); err != nil {
				return nil, err
			}

		case isClockTime(tok):
			if err := st.takeClock(tok); err != nil {
				return nil, err
			}

		case isYearToken(tok, ref):
			spec.Year = future.N(atoiStrict(tok))

		case isMilitaryTime(tok):
			spec.Hour = future.N(atoiStrict(tok[:2]))
			spec.Minute = future.N(atoiStrict(tok[2:]))
			spec.Second = future.N(0)

		case isQuarterCode(tok):
			q := int(tok[1] - '0')
			if q < 1 || q > 4 {
				return nil, future.ErrNoResult
			}
			spec.Quarter = future.N(q)

		case isSeparatedDate(tok):
			if err := st.takeSeparatedDate(tok); err != nil {
				return nil, err
			}

		case isNumber(tok):
			// Two adjacent bare numbers read as a month/day pair when that
			// reading is valid; otherwise each is resolved on its own.
			if i+1 < len(tokens) && isNumber(tokens[i+1]) && st.takePair(tok, tokens[i+1]) {
				i++
				continue
			}
			st.takeBare(tok, i)

		default:
			leftover = append(leftover, tok)
		}
	}
	return leftover, nil
}

// joinMeridiem glues a detached am/pm token onto the number before it, so
// "3 pm" scans like "3pm".
func joinMeridiem(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(out) > 0 {
			switch tok {
			case "am", "pm", "a.m.", "p.m.":
				out[len(out)-1] += tok
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isOrdinalDay(tok string) bool {
	if len(tok) < 3 || tok[0] < '0' || tok[0] > '9' {
		return false
	}
	switch tok[len(tok)-2:] {
	case "st", "nd", "rd", "th":
		return isNumber(tok[:len(tok)-2])
	}
	return false
}

func (st *numericState) takeOrdinal(tok string) error {
	day := atoiStrict(tok[:len(tok)-2])
	if day < 1 || day > 31 {
		return future.ErrNoResult
	}
	st.spec.Day = future.N(day)
	st.dayToken = -1
	return nil
}

func isClockTime(tok string) bool {
	if hasMeridiem(tok) {
		return true
	}
	if !strings.Contains(tok, ":") {
		return false
	}
	for _, seg := range strings.Split(tok, ":") {
		if !isNumber(seg) {
			return false
		}
	}
	return true
}

func hasMeridiem(tok string) bool {
	if len(tok) < 3 {
		return false
	}
	switch {
	case strings.HasSuffix(tok, "am"), strings.HasSuffix(tok, "pm"):
		return tok[0] >= '0' && tok[0] <= '9'
	case strings.HasSuffix(tok, "a.m."), strings.HasSuffix(tok, "p.m."):
		return len(tok) > 4 && tok[0] >= '0' && tok[0] <= '9'
	}
	return false
}

func (st *numericState) takeClock(tok string) error {
	pm := false
	switch {
	case strings.HasSuffix(tok, "a.m."):
		tok = tok[:len(tok)-4]
	case strings.HasSuffix(tok, "p.m."):
		pm = true
		tok = tok[:len(tok)-4]
	case strings.HasSuffix(tok, "am"):
		tok = tok[:len(tok)-2]
	case strings.HasSuffix(tok, "pm"):
		pm = true
		tok = tok[:len(tok)-2]
	}

	parts := strings.Split(tok, ":")
	if len(parts) > 3 {
		return future.ErrNoResult
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if !isNumber(p) {
			return future.ErrNoResult
		}
		nums[i] = atoiStrict(p)
	}

	hour := nums[0]
	if pm && hour < 12 {
		hour += 12
	}
	minute, second := 0, 0
	if len(nums) > 1 {
		minute = nums[1]
	}
	if len(nums) > 2 {
		second = nums[2]
	}
	if hour > 23 || minute > 59 || second > 59 {
		return future.ErrNoResult
	}
	st.spec.Hour = future.N(hour)
	st.spec.Minute = future.N(minute)
	st.spec.Second = future.N(second)
	return nil
}

// isYearToken recognizes a four-digit "20xx" year within ten years of the
// reference. It is checked ahead of military time, which would otherwise
// swallow every such token as 8:xx-pm-ish clock readings.
func isYearToken(tok string, ref time.Time) bool {
	if len(tok) != 4 || !strings.HasPrefix(tok, "20") || !isNumber(tok) {
		return false
	}
	y := atoiStrict(tok)
	return y >= ref.Year() && y <= ref.Year()+yearWindow
}

func isMilitaryTime(tok string) bool {
	if len(tok) != 4 || !isNumber(tok) {
		return false
	}
	return atoiStrict(tok[:2]) <= 23 && atoiStrict(tok[2:]) <= 59
}

func isQuarterCode(tok string) bool {
	return len(tok) == 2 && tok[0] == 'q' && tok[1] >= '0' && tok[1] <= '9'
}

// dateSeparator reports the separator a token is joined with, or "".
func dateSeparator(tok string) string {
	for _, sep := range []string{"-", "/", "\\", "–"} {
		if strings.Contains(tok, sep) {
			return sep
		}
	}
	return ""
}

// isSeparatedDate reports whether a token is a candidate date fragment: a
// known separator with at least one all-digit segment, so hyphenated prose
// is left alone.
func isSeparatedDate(tok string) bool {
	sep := dateSeparator(tok)
	if sep == "" {
		return false
	}
	for _, seg := range strings.Split(tok, sep) {
		if isNumber(seg) {
			return true
		}
	}
	return false
}

// takeSeparatedDate disambiguates a dash/slash-joined date fragment into
// day, month, and year.
func (st *numericState) takeSeparatedDate(tok string) error {
	segs := strings.Split(tok, dateSeparator(tok))
	if len(segs) < 2 || len(segs) > 3 {
		return future.ErrNoResult
	}

	// A four-digit segment at either end is the year. A leading year means an
	// ISO-style fragment whose remainder is always month-then-day; a trailing
	// year leaves the remainder to the locale profile.
	switch {
	case len(segs[0]) == 4 && isNumber(segs[0]):
		return st.dateWithYear(atoiStrict(segs[0]), segs[1:], locale.MonthFirst)
	case len(segs[len(segs)-1]) == 4 && isNumber(segs[len(segs)-1]):
		return st.dateWithYear(atoiStrict(segs[len(segs)-1]), segs[:len(segs)-1], st.profile)
	}

	// A named month fixes that segment; the rest are numeric.
	for i, seg := range segs {
		if isNumber(seg) {
			continue
		}
		m, ok := st.tbl.Month(seg)
		if !ok {
			return future.ErrNoResult
		}
		rest := make([]string, 0, len(segs)-1)
		rest = append(rest, segs[:i]...)
		rest = append(rest, segs[i+1:]...)
		return st.dateWithMonth(m, rest)
	}

	return st.dateAllNumeric(segs)
}

// dateWithYear handles yyyy-mm, mm-yyyy, yyyy-mm-dd, dd-mm-yyyy and the
// named-month variants of each.
func (st *numericState) dateWithYear(year int, rest []string, order locale.Profile) error {
	day := 1
	month := 0

	switch len(rest) {
	case 1:
		m, err := st.monthSegment(rest[0])
		if err != nil {
			return err
		}
		month = m
	case 2:
		// A named segment is the month wherever it sits; otherwise the
		// locale profile orders the two numerics.
		named := -1
		for i, seg := range rest {
			if !isNumber(seg) {
				named = i
			}
		}
		switch {
		case named >= 0:
			m, err := st.monthSegment(rest[named])
			if err != nil {
				return err
			}
			month = m
			day = atoiStrict(rest[1-named])
		default:
			month = atoiStrict(rest[order.MonthPosition])
			day = atoiStrict(rest[order.DayPosition])
		}
	default:
		return future.ErrNoResult
	}

	return st.setDate(day, month, year, true)
}

// dateWithMonth handles a named month joined with one or two numeric
// segments, e.g. "5-jun" or "jun-5-24".
func (st *numericState) dateWithMonth(month int, rest []string) error {
	for _, seg := range rest {
		if !isNumber(seg) {
			return future.ErrNoResult
		}
	}

	switch len(rest) {
	case 1:
		v := atoiStrict(rest[0])
		if v < 32 {
			return st.setDate(v, month, 0, false)
		}
		return st.twoDigitYearDate(1, month, v)
	case 2:
		day := atoiStrict(rest[0])
		year := atoiStrict(rest[1])
		if day >= 32 {
			day, year = year, day
		}
		return st.twoDigitYearDate(day, month, year)
	default:
		return future.ErrNoResult
	}
}

// dateAllNumeric handles purely numeric fragments with no four-digit year,
// like "05/06", "24-11", or "5/6/24".
func (st *numericState) dateAllNumeric(segs []string) error {
	nums := make([]int, len(segs))
	for i, seg := range segs {
		if !isNumber(seg) {
			return future.ErrNoResult
		}
		nums[i] = atoiStrict(seg)
	}

	if len(nums) == 2 {
		a, b := nums[0], nums[1]
		switch {
		case a <= 12 && b <= 12:
			return st.setDate(nums[st.profile.DayPosition], nums[st.profile.MonthPosition], 0, false)
		case a <= 12:
			if b < 32 {
				return st.setDate(b, a, 0, false)
			}
			return st.twoDigitYearDate(1, a, b)
		case b <= 12:
			if a < 32 {
				return st.setDate(a, b, 0, false)
			}
			return st.twoDigitYearDate(1, b, a)
		default:
			return future.ErrNoResult
		}
	}

	// Three segments: month and day positions straight from the profile, the
	// remaining one is the year.
	yearPos := 3 - st.profile.MonthPosition - st.profile.DayPosition
	return st.twoDigitYearDate(nums[st.profile.DayPosition], nums[st.profile.MonthPosition], nums[yearPos])
}

func (st *numericState) monthSegment(seg string) (int, error) {
	if isNumber(seg) {
		return atoiStrict(seg), nil
	}
	if m, ok := st.tbl.Month(seg); ok {
		return m, nil
	}
	return 0, future.ErrNoResult
}

// twoDigitYearDate normalizes a 2-digit year by adding 2000 and requires the
// result to land within the lookahead window.
func (st *numericState) twoDigitYearDate(day, month, year int) error {
	if year < 100 {
		year += 2000
	}
	if year < st.ref.Year() || year > st.ref.Year()+yearWindow {
		return future.ErrNoResult
	}
	return st.setDate(day, month, year, true)
}

func (st *numericState) setDate(day, month, year int, hasYear bool) error {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return future.ErrNoResult
	}
	st.spec.Day = future.N(day)
	st.spec.Month = future.N(month)
	if hasYear {
		st.spec.Year = future.N(year)
	}
	st.dayToken = -1
	return nil
}

// takePair tries two adjacent bare numbers as a month/day pair ordered by
// the locale profile. It reports false when that reading is invalid, leaving
// both tokens for single-number resolution.
func (st *numericState) takePair(a, b string) bool {
	if st.spec.Month.Valid || st.spec.Day.Valid {
		return false
	}
	pair := [2]int{atoiStrict(a), atoiStrict(b)}
	month := pair[st.profile.MonthPosition]
	day := pair[st.profile.DayPosition]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	st.spec.Month = future.N(month)
	st.spec.Day = future.N(day)
	st.dayToken = -1
	return true
}

// takeBare resolves a lone bare number against what the phrase has already
// established, trying day, then year, then hour, then minute. A number that
// fits nothing is silently left behind.
func (st *numericState) takeBare(tok string, idx int) {
	v := atoiStrict(tok)
	spec := st.spec

	switch {
	case !spec.Day.Valid && spec.Month.Valid && v >= 1 && v <= 31:
		spec.Day = future.N(v)
		st.dayToken = idx

	case !spec.Year.Valid && spec.Month.Valid && spec.Day.Valid && inYearWindow(v, st.ref):
		y := v
		if y < 100 {
			y += 2000
		}
		spec.Year = future.N(y)

	case !spec.Hour.Valid && v <= 23:
		hour := v
		// A small hour that has already passed today reads as its evening
		// counterpart: "at 5" said at 14:00 means 17:00.
		if hour < 12 && st.ref.Hour() >= hour {
			hour += 12
		}
		spec.Hour = future.N(hour)
		spec.Minute = future.N(0)
		spec.Second = future.N(0)

	case spec.Hour.Valid && !spec.Minute.Valid && v < 60:
		spec.Minute = future.N(v)

	case !spec.Hour.Valid && v < 60 && spec.Day.Valid && spec.Day.N < 24 && st.dayToken == idx-1:
		// "5 30" where 5 was provisionally a day: reread as 5:30.
		spec.Hour = future.N(spec.Day.N)
		spec.Minute = future.N(v)
		spec.Second = future.N(0)
		spec.Day = future.Opt{}
		st.dayToken = -1
	}
}

func inYearWindow(v int, ref time.Time) bool {
	if v < 100 {
		v += 2000
	}
	return v >= ref.Year() && v <= ref.Year()+yearWindow
}

// atoiStrict parses a token already known to be all digits.
func atoiStrict(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
