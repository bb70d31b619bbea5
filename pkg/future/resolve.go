package future

import "time"

// Resolve computes the nearest calendar moment strictly after ref that is
// consistent with spec, or ErrNoResult when no such moment exists. Branch
// order is significant and must not be rearranged: specials win over relative
// offsets, which win over absolute fields.
func Resolve(spec Spec, ref time.Time) (time.Time, error) {
	if spec.RefZone != nil {
		ref = rebase(ref, spec.RefZone)
	}

	if spec.empty() {
		return time.Time{}, ErrNoResult
	}
	if err := validate(spec); err != nil {
		return time.Time{}, err
	}

	var (
		out time.Time
		err error
	)
	switch {
	case spec.Special != SpecialNone:
		out, err = resolveSpecial(spec, ref)
	case spec.hasOffsets():
		out, err = resolveRelative(spec, ref)
	case spec.Weekday.Valid:
		out, err = resolveWeekday(spec, ref)
	default:
		out, err = resolveAbsolute(spec, ref)
	}
	if err != nil {
		return time.Time{}, err
	}

	// Final guard, all branches: the moment must be strictly future.
	if !out.After(ref) {
		return time.Time{}, ErrNoResult
	}

	if spec.Zone != nil {
		out = rebase(out, spec.Zone)
	}
	return out, nil
}

// validate rejects out-of-range fields before any branch can act on them.
// Every branch may assume in-range values afterwards.
func validate(spec Spec) error {
	if spec.Weekday.Valid && (spec.Weekday.N < 0 || spec.Weekday.N > 6) {
		return ErrNoResult
	}
	if spec.Day.Valid && (spec.Day.N < 1 || spec.Day.N > 31) {
		return ErrNoResult
	}
	if spec.Month.Valid && (spec.Month.N < 1 || spec.Month.N > 12) {
		return ErrNoResult
	}
	if spec.Quarter.Valid && (spec.Quarter.N < 1 || spec.Quarter.N > 4) {
		return ErrNoResult
	}
	return nil
}

// resolveSpecial applies the fixed formula of a named anchor. Anchors honor a
// requested time of day except where they intrinsically fix it (TONIGHT,
// LATER).
func resolveSpecial(spec Spec, ref time.Time) (time.Time, error) {
	loc := ref.Location()
	h := spec.Hour.Or(DefaultHour)
	m := spec.Minute.Or(0)
	s := spec.Second.Or(0)

	switch spec.Special {
	case Later:
		t := ref.Add(laterHours * time.Hour)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc), nil

	case Tonight, LaterTonight:
		if ref.Hour() >= tonightHour {
			return time.Time{}, ErrNoResult
		}
		return time.Date(ref.Year(), ref.Month(), ref.Day(), tonightHour, 0, 0, 0, loc), nil

	case Today:
		return time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, s, 0, loc), nil

	case Tomorrow:
		t := ref.AddDate(0, 0, 1)
		return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, loc), nil

	case Weekend:
		// If the reference is already on the weekend, step onto a workday so
		// the search lands on next week's Saturday.
		base := ref
		if weekdayOf(base) >= 5 {
			base = base.AddDate(0, 0, 2)
		}
		sat := nextWeekdayOnOrAfter(base, 5)
		return time.Date(sat.Year(), sat.Month(), sat.Day(), h, m, s, 0, loc), nil

	case NextWeek:
		days := (7 - weekdayOf(ref)) % 7
		if days == 0 {
			days = 7
		}
		t := ref.AddDate(0, 0, days)
		return time.Date(t.Year(), t.Month(), t.Day(), h, m, s, 0, loc), nil

	case NextMonth:
		y, mo := ref.Year(), int(ref.Month())+1
		if mo > 12 {
			mo = 1
			y++
		}
		return time.Date(y, time.Month(mo), 1, h, m, s, 0, loc), nil

	case NextQuarter:
		y, mo := ref.Year(), quarterStartMonth(int(ref.Month()))+3
		if mo > 12 {
			mo -= 12
			y++
		}
		return time.Date(y, time.Month(mo), 1, h, m, s, 0, loc), nil

	case NextYear:
		return time.Date(ref.Year()+1, time.January, 1, h, m, s, 0, loc), nil
	}
	return time.Time{}, ErrNoResult
}

// resolveRelative adds the requested offsets to the reference moment using
// calendar-aware addition: month and year steps clamp to the last valid day
// instead of normalizing into the next month. Absolute time fields, when also
// present, replace the reference's before the offsets are applied.
func resolveRelative(spec Spec, ref time.Time) (time.Time, error) {
	loc := ref.Location()

	y := spec.Year.Or(ref.Year())
	mo := spec.Month.Or(int(ref.Month()))
	d := spec.Day.Or(ref.Day())
	h := spec.Hour.Or(ref.Hour())
	mi := spec.Minute.Or(ref.Minute())
	s := spec.Second.Or(ref.Second())

	months := spec.Months
	if spec.Quarters != 0 {
		// A quarter offset counts whole quarters from the start of the
		// reference quarter.
		if !spec.Month.Valid {
			mo = quarterStartMonth(mo)
		}
		if !spec.Day.Valid {
			d = 1
		}
		months += 3 * spec.Quarters
	}

	if d > daysIn(y, mo) {
		d = daysIn(y, mo)
	}
	base := time.Date(y, time.Month(mo), d, h, mi, s, 0, loc)

	out := addCalendar(base, spec.Years, months)
	out = out.AddDate(0, 0, spec.Weeks*7+spec.Days)
	out = out.Add(time.Duration(spec.Hours)*time.Hour +
		time.Duration(spec.Minutes)*time.Minute +
		time.Duration(spec.Seconds)*time.Second)
	return out, nil
}

// resolveWeekday handles every branch where a weekday constraint is present.
func resolveWeekday(spec Spec, ref time.Time) (time.Time, error) {
	loc := ref.Location()
	w := spec.Weekday.N

	h := spec.Hour.Or(DefaultHour)
	mi := spec.Minute.Or(0)
	s := spec.Second.Or(0)

	refY, refM := ref.Year(), int(ref.Month())

	switch {
	// Weekday alone: next occurrence strictly after today.
	case !spec.Day.Valid && !spec.Month.Valid && !spec.Year.Valid:
		t := nextWeekdayOnOrAfter(ref.AddDate(0, 0, 1), w)
		return time.Date(t.Year(), t.Month(), t.Day(), h, mi, s, 0, loc), nil

	// Fully specified date: it must fall on the requested weekday.
	case spec.Day.Valid && spec.Month.Valid && spec.Year.Valid:
		if spec.Day.N > daysIn(spec.Year.N, spec.Month.N) {
			return time.Time{}, ErrNoResult
		}
		t := time.Date(spec.Year.N, time.Month(spec.Month.N), spec.Day.N, h, mi, s, 0, loc)
		if weekdayOf(t) != w || !t.After(ref) {
			return time.Time{}, ErrNoResult
		}
		return t, nil

	// Day of month fixed: step month by month (or year by year when the month
	// is fixed too) until the day lands on the weekday.
	case spec.Day.Valid:
		day := spec.Day.N
		y := spec.Year.Or(refY)
		m := spec.Month.Or(refM)

		advance := func() {
			if spec.Month.Valid {
				y++
			} else {
				m++
				if m > 12 {
					m = 1
					y++
				}
			}
		}

		stopYear := spec.Year.Or(refY + searchYearCeiling)

		// Skip starting months that do not contain the day at all.
		for day > daysIn(y, m) {
			if y > stopYear {
				return time.Time{}, ErrNoResult
			}
			advance()
		}
		try := time.Date(y, time.Month(m), day, h, mi, s, 0, loc)
		if try.Before(ref) {
			advance()
		}
		for {
			if y > stopYear {
				return time.Time{}, ErrNoResult
			}
			if day <= daysIn(y, m) {
				try = time.Date(y, time.Month(m), day, h, mi, s, 0, loc)
				if weekdayOf(try) == w {
					return try, nil
				}
			}
			advance()
		}

	// Month fixed, day free: first matching weekday within the month.
	case spec.Month.Valid:
		m := spec.Month.N
		if !spec.Year.Valid {
			start := ref
			if m != refM {
				start = time.Date(refY, time.Month(m), 1, h, mi, s, 0, loc)
				if start.Before(ref) {
					start = start.AddDate(1, 0, 0)
				}
			}
			t := nextWeekdayOnOrAfter(start, w)
			if int(t.Month()) == m {
				return t, nil
			}
			// Ran past the month's last matching weekday: same month, next year.
			first := time.Date(start.Year()+1, time.Month(m), 1,
				start.Hour(), start.Minute(), start.Second(), 0, loc)
			return nextWeekdayOnOrAfter(first, w), nil
		}

		start := time.Date(spec.Year.N, time.Month(m), 1, h, mi, s, 0, loc)
		if start.Year() == refY && m == refM {
			start = ref
		} else if start.Year() < refY {
			return time.Time{}, ErrNoResult
		}
		t := nextWeekdayOnOrAfter(start, w)
		if int(t.Month()) != m {
			return time.Time{}, ErrNoResult
		}
		return t, nil

	// Year fixed only.
	default:
		y := spec.Year.N
		start := ref
		if y > refY {
			start = time.Date(y, time.January, 1, h, mi, s, 0, loc)
		} else if y < refY {
			return time.Time{}, ErrNoResult
		} else if w == weekdayOf(start) && h < start.Hour() {
			start = start.AddDate(0, 0, 1)
		}
		t := nextWeekdayOnOrAfter(start, w)
		if t.Year() != y {
			return time.Time{}, ErrNoResult
		}
		return t, nil
	}
}

// resolveAbsolute fills the unset fields down from the reference and then
// runs the overflow-correction loop until the day exists in the chosen month.
func resolveAbsolute(spec Spec, ref time.Time) (time.Time, error) {
	loc := ref.Location()
	refY, refM := ref.Year(), int(ref.Month())

	hourSet := spec.Hour.Valid
	h := spec.Hour.Or(DefaultHour)
	mi := spec.Minute.Or(0)
	s := spec.Second.Or(0)

	dayWasNone := !spec.Day.Valid
	day := spec.Day.N
	if dayWasNone {
		if !hourSet || spec.Quarter.Valid {
			day = 1
		} else {
			day = ref.Day()
			if h <= ref.Hour() && !spec.Month.Valid && !spec.Year.Valid && !spec.Quarter.Valid {
				day++
			}
		}
	}

	month := spec.Month.N
	if !spec.Month.Valid {
		switch {
		case spec.Quarter.Valid:
			month = (spec.Quarter.N-1)*3 + 1
		case dayWasNone && !hourSet:
			month = 1
		default:
			month = refM
			if day < ref.Day() || (day == ref.Day() && h <= ref.Hour()) {
				month++
			}
		}
	}

	year := spec.Year.Or(refY)
	if !spec.Year.Valid {
		if month < refM ||
			(month == refM && day < ref.Day()) ||
			(month == refM && day == ref.Day() && h <= ref.Hour()) {
			year++
		}
	}
	if month > 12 {
		month = 1
		year++
	}

	// Feb 29 in a non-leap year: the requested day can never exist there, so
	// fall to March 1 of the already-chosen year.
	if day == 29 && month == 2 && !isLeap(year) {
		day = 1
		month = 3
	}

	// Overflow correction: advance the least-constrained free unit until the
	// day exists. There are no two consecutive months shorter than 31 days,
	// so the loop settles within a couple of iterations.
	for day > daysIn(year, month) {
		month = month%12 + 1
		if month == 1 {
			year++
		}
		if dayWasNone {
			day = 1
		}
	}

	return time.Date(year, time.Month(month), day, h, mi, s, 0, loc), nil
}

// weekdayOf returns the weekday of t with Monday as 0 and Sunday as 6.
func weekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// nextWeekdayOnOrAfter returns t advanced to the requested weekday, staying
// put when t already falls on it.
func nextWeekdayOnOrAfter(t time.Time, weekday int) time.Time {
	ahead := weekday - weekdayOf(t)
	if ahead < 0 {
		ahead += 7
	}
	return t.AddDate(0, 0, ahead)
}

// quarterStartMonth returns the first month of the quarter containing month.
func quarterStartMonth(month int) int {
	return ((month-1)/3)*3 + 1
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysIn returns the number of days in the given month.
func daysIn(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month]
}

// addCalendar adds years and months with day clamping: Jan 31 plus one month
// is Feb 28/29, not Mar 2.
func addCalendar(t time.Time, years, months int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + years*12 + months
	y, m := total/12, total%12+1
	d := t.Day()
	if max := daysIn(y, m); d > max {
		d = max
	}
	return time.Date(y, time.Month(m), d, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// rebase relabels t's wall-clock fields into loc without shifting them.
func rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
