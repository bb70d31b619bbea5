package future

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(y int, mo time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
}

func TestResolveEmptySpec(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Spec{}, mk(2023, time.October, 25, 11, 30, 0))
	require.ErrorIs(t, err, ErrNoResult)
}

func TestResolveSpecialLater(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Special: Later}, mk(2023, time.October, 27, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 27, 15, 0, 0), got, "four hours later, minutes and seconds zeroed")
}

func TestResolveSpecialWeekend(t *testing.T) {
	t.Parallel()

	// Wednesday resolves to the coming Saturday.
	got, err := Resolve(Spec{Special: Weekend}, mk(2023, time.October, 25, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 28, 8, 0, 0), got)

	// Already Saturday: next week's Saturday.
	got, err = Resolve(Spec{Special: Weekend}, mk(2023, time.October, 28, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 4, 8, 0, 0), got)

	// Sunday behaves the same.
	got, err = Resolve(Spec{Special: Weekend}, mk(2023, time.October, 29, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 4, 8, 0, 0), got)
}

func TestResolveSpecialTonight(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Special: Tonight}, mk(2023, time.October, 25, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 25, 20, 0, 0), got)

	_, err = Resolve(Spec{Special: Tonight}, mk(2023, time.October, 25, 20, 30, 0))
	require.ErrorIs(t, err, ErrNoResult, "already past tonight")

	_, err = Resolve(Spec{Special: LaterTonight}, mk(2023, time.October, 25, 23, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)
}

func TestResolveSpecialTodayAndTomorrow(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Special: Today, Hour: N(22)}, mk(2023, time.October, 25, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 25, 22, 0, 0), got)

	// Today at a time that has already passed has no answer.
	_, err = Resolve(Spec{Special: Today, Hour: N(9)}, mk(2023, time.October, 25, 11, 30, 0))
	require.ErrorIs(t, err, ErrNoResult)

	got, err = Resolve(Spec{Special: Tomorrow}, mk(2023, time.October, 25, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 26, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: Tomorrow, Hour: N(10)}, mk(2023, time.December, 31, 23, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 10, 0, 0), got)
}

func TestResolveSpecialNextUnits(t *testing.T) {
	t.Parallel()

	ref := mk(2023, time.October, 25, 11, 30, 0) // Wednesday

	got, err := Resolve(Spec{Special: NextWeek}, ref)
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 30, 8, 0, 0), got, "next Monday")

	// Already Monday: a full week ahead.
	got, err = Resolve(Spec{Special: NextWeek}, mk(2023, time.October, 30, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 6, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: NextMonth}, ref)
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 1, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: NextMonth}, mk(2023, time.December, 5, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: NextQuarter}, ref)
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: NextQuarter}, mk(2023, time.May, 2, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.July, 1, 8, 0, 0), got)

	got, err = Resolve(Spec{Special: NextYear}, ref)
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 8, 0, 0), got)
}

func TestResolveWeekdayOnly(t *testing.T) {
	t.Parallel()

	const wednesday = 2

	cases := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"on the same weekday", mk(2023, time.October, 25, 0, 0, 0), mk(2023, time.November, 1, 8, 0, 0)},
		{"from friday", mk(2023, time.November, 3, 0, 0, 0), mk(2023, time.November, 8, 8, 0, 0)},
		{"from monday", mk(2023, time.November, 13, 0, 0, 0), mk(2023, time.November, 15, 8, 0, 0)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(Spec{Weekday: N(wednesday)}, tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveWeekdayOnlyProperty(t *testing.T) {
	t.Parallel()

	// For any weekday and reference, the result falls within (ref, ref+7d]
	// and lands on the requested weekday.
	ref := mk(2023, time.June, 14, 13, 45, 12)
	for w := 0; w < 7; w++ {
		for d := 0; d < 7; d++ {
			r := ref.AddDate(0, 0, d)
			got, err := Resolve(Spec{Weekday: N(w)}, r)
			require.NoError(t, err)
			assert.Equal(t, w, weekdayOf(got))
			assert.True(t, got.After(r), "must be strictly future")
			assert.False(t, got.After(r.AddDate(0, 0, 7)), "must be within seven days")
		}
	}
}

func TestResolveDayOnly(t *testing.T) {
	t.Parallel()

	// Same day already at a later hour: next month.
	got, err := Resolve(Spec{Day: N(18)}, mk(2023, time.October, 18, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 18, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(18)}, mk(2023, time.October, 19, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.November, 18, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(18)}, mk(2023, time.October, 17, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 18, 8, 0, 0), got)
}

func TestResolveOverflowCorrection(t *testing.T) {
	t.Parallel()

	// The 31st in a 30-day month rolls to the next month with a 31st.
	got, err := Resolve(Spec{Day: N(31)}, mk(2023, time.June, 5, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.July, 31, 8, 0, 0), got)

	// 31st asked on the last day of June at a later hour.
	got, err = Resolve(Spec{Day: N(31)}, mk(2023, time.June, 30, 16, 22, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.July, 31, 8, 0, 0), got)

	// 8am on Jan 31 9am: first of February.
	got, err = Resolve(Spec{Hour: N(8)}, mk(2023, time.January, 31, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.February, 1, 8, 0, 0), got)

	// 8am on Dec 31 9am: first of January, next year.
	got, err = Resolve(Spec{Hour: N(8)}, mk(2023, time.December, 31, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 8, 0, 0), got)

	// Feb 29 resolves to the next leap year when one is ahead.
	got, err = Resolve(Spec{Day: N(29), Month: N(2)}, mk(2023, time.April, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.February, 29, 8, 0, 0), got)

	// Feb 29 falls to March 1 when the chosen year is not a leap year.
	got, err = Resolve(Spec{Day: N(29), Month: N(2)}, mk(2022, time.April, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.March, 1, 8, 0, 0), got)
}

func TestResolveMonthOnly(t *testing.T) {
	t.Parallel()

	const april = 4

	got, err := Resolve(Spec{Month: N(april)}, mk(2023, time.June, 5, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 1, 8, 0, 0), got, "April already past")

	got, err = Resolve(Spec{Month: N(april)}, mk(2023, time.April, 10, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 1, 8, 0, 0), got, "inside April")

	got, err = Resolve(Spec{Month: N(april)}, mk(2023, time.February, 15, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 8, 0, 0), got, "April still ahead")
}

func TestResolveYearOnly(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Spec{Year: N(2023)}, mk(2023, time.May, 1, 0, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "the year already started")

	got, err := Resolve(Spec{Year: N(2023)}, mk(2022, time.June, 5, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.January, 1, 8, 0, 0), got)

	_, err = Resolve(Spec{Year: N(2023)}, mk(2024, time.June, 5, 0, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "the year is over")
}

func TestResolveDayAndMonth(t *testing.T) {
	t.Parallel()

	spec := Spec{Day: N(2), Month: N(5)}

	cases := []struct {
		ref  time.Time
		want time.Time
	}{
		{mk(2023, time.May, 2, 9, 0, 0), mk(2024, time.May, 2, 8, 0, 0)},
		{mk(2023, time.May, 1, 0, 0, 0), mk(2023, time.May, 2, 8, 0, 0)},
		{mk(2023, time.May, 3, 0, 0, 0), mk(2024, time.May, 2, 8, 0, 0)},
		{mk(2023, time.April, 15, 0, 0, 0), mk(2023, time.May, 2, 8, 0, 0)},
		{mk(2023, time.June, 10, 0, 0, 0), mk(2024, time.May, 2, 8, 0, 0)},
	}
	for _, tc := range cases {
		got, err := Resolve(spec, tc.ref)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	got, err := Resolve(Spec{Day: N(2), Month: N(5), Hour: N(10), Minute: N(30)},
		mk(2023, time.June, 10, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.May, 2, 10, 30, 0), got)
}

func TestResolveMonthAndYear(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Month: N(4), Year: N(2023)}, mk(2023, time.February, 1, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 8, 0, 0), got)

	_, err = Resolve(Spec{Month: N(4), Year: N(2023)}, mk(2023, time.April, 1, 8, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "that moment is now")

	_, err = Resolve(Spec{Month: N(4), Year: N(2023)}, mk(2023, time.June, 1, 0, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "the month is over")

	got, err = Resolve(Spec{Month: N(4), Year: N(2023), Hour: N(11), Minute: N(15)},
		mk(2023, time.February, 1, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 11, 15, 0), got)
}

func TestResolveDayAndYear(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Day: N(16), Year: N(2024)}, mk(2024, time.January, 16, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.February, 16, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(16), Year: N(2024)}, mk(2024, time.January, 18, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.February, 16, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(16), Year: N(2024)}, mk(2023, time.January, 1, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 16, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(16), Year: N(2024), Hour: N(16)}, mk(2023, time.January, 1, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 16, 16, 0, 0), got)
}

func TestResolveFullDate(t *testing.T) {
	t.Parallel()

	spec := Spec{Day: N(15), Month: N(4), Year: N(2023)}

	got, err := Resolve(spec, mk(2023, time.January, 4, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 15, 8, 0, 0), got)

	_, err = Resolve(spec, mk(2023, time.April, 15, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)

	_, err = Resolve(spec, mk(2023, time.April, 30, 0, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)

	// With an explicit hour the same day can still work.
	got, err = Resolve(Spec{Day: N(15), Month: N(4), Year: N(2023), Hour: N(9)},
		mk(2023, time.April, 15, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 15, 9, 0, 0), got)

	_, err = Resolve(Spec{Day: N(15), Month: N(4), Year: N(2023), Hour: N(9)},
		mk(2023, time.April, 15, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)
}

func TestResolveHourOnly(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Hour: N(9)}, mk(2023, time.April, 15, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 15, 9, 0, 0), got)

	got, err = Resolve(Spec{Hour: N(9)}, mk(2023, time.April, 15, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 16, 9, 0, 0), got, "same hour pushes to tomorrow")

	got, err = Resolve(Spec{Hour: N(9)}, mk(2023, time.April, 15, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 16, 9, 0, 0), got)
}

func TestResolveWeekdayWithMonth(t *testing.T) {
	t.Parallel()

	// Last Tuesday of April 2023 is the 25th.
	got, err := Resolve(Spec{Weekday: N(1), Month: N(4)}, mk(2023, time.April, 26, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 2, 8, 0, 0), got, "first Tuesday of April next year")

	got, err = Resolve(Spec{Weekday: N(1), Month: N(4)}, mk(2023, time.January, 15, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 4, 8, 0, 0), got)

	got, err = Resolve(Spec{Weekday: N(1), Month: N(4)}, mk(2023, time.May, 26, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 2, 8, 0, 0), got)

	// A month that starts on the requested weekday.
	got, err = Resolve(Spec{Weekday: N(0), Month: N(1)}, mk(2023, time.November, 6, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 8, 0, 0), got)
}

func TestResolveWeekdayWithYear(t *testing.T) {
	t.Parallel()

	// Friday after the last Thursday of 2024.
	_, err := Resolve(Spec{Weekday: N(3), Year: N(2024)}, mk(2024, time.December, 27, 0, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)

	// Thursday inside the year at a later wall hour: next Thursday, keeping
	// the reference's time of day.
	got, err := Resolve(Spec{Weekday: N(3), Year: N(2024), Hour: N(8)},
		mk(2024, time.December, 12, 11, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.December, 19, 11, 0, 0), got)

	got, err = Resolve(Spec{Weekday: N(3), Year: N(2024)}, mk(2024, time.December, 13, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.December, 19, 0, 0, 0), got)
}

func TestResolveWeekdayWithDay(t *testing.T) {
	t.Parallel()

	// First 2nd-of-month falling on a Wednesday.
	got, err := Resolve(Spec{Day: N(2), Weekday: N(2)}, mk(2023, time.April, 2, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.August, 2, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(2), Weekday: N(2)}, mk(2022, time.November, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2022, time.November, 2, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(2), Weekday: N(2)}, mk(2023, time.September, 3, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.October, 2, 8, 0, 0), got)
}

func TestResolveWeekdayWithDayAndMonth(t *testing.T) {
	t.Parallel()

	// January 3rd on a Thursday: a long year-by-year search.
	got, err := Resolve(Spec{Day: N(3), Month: N(1), Weekday: N(3)}, mk(2023, time.January, 3, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2030, time.January, 3, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(3), Month: N(1), Weekday: N(3)}, mk(2019, time.January, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2019, time.January, 3, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(3), Month: N(1), Weekday: N(3)}, mk(2030, time.January, 4, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2036, time.January, 3, 8, 0, 0), got)
}

func TestResolveWeekdayWithDayAndYear(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Day: N(4), Year: N(2024), Weekday: N(4)}, mk(2024, time.January, 4, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.October, 4, 8, 0, 0), got)

	got, err = Resolve(Spec{Day: N(4), Year: N(2024), Weekday: N(4)}, mk(2024, time.October, 3, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.October, 4, 8, 0, 0), got)

	_, err = Resolve(Spec{Day: N(4), Year: N(2024), Weekday: N(4)}, mk(2024, time.October, 5, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "no later 4th falls on a Friday in 2024")
}

func TestResolveWeekdayWithMonthAndYear(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Month: N(3), Year: N(2024), Weekday: N(5)}, mk(2024, time.January, 5, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.March, 2, 8, 0, 0), got)

	// Inside the month the search starts at the reference, keeping its time.
	got, err = Resolve(Spec{Month: N(3), Year: N(2024), Weekday: N(5)}, mk(2024, time.March, 4, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.March, 9, 9, 0, 0), got)

	_, err = Resolve(Spec{Month: N(3), Year: N(2024), Weekday: N(4)}, mk(2024, time.March, 30, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult, "no Friday left in March 2024")
}

func TestResolveWeekdayInconsistentWithDate(t *testing.T) {
	t.Parallel()

	// 2023-10-26 is a Thursday, not a Friday.
	_, err := Resolve(Spec{Month: N(10), Day: N(26), Year: N(2023), Weekday: N(4)},
		mk(2023, time.February, 26, 7, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)

	got, err := Resolve(Spec{Month: N(10), Day: N(26), Year: N(2023), Weekday: N(3)},
		mk(2023, time.January, 26, 7, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 26, 8, 0, 0), got)
}

func TestResolveQuarter(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Quarter: N(2)}, mk(2023, time.January, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 8, 0, 0), got)

	got, err = Resolve(Spec{Quarter: N(2)}, mk(2023, time.April, 5, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 1, 8, 0, 0), got, "already inside Q2")

	got, err = Resolve(Spec{Quarter: N(2)}, mk(2023, time.September, 10, 15, 22, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 1, 8, 0, 0), got, "Q2 already past")

	got, err = Resolve(Spec{Quarter: N(2), Hour: N(9)}, mk(2023, time.December, 5, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.April, 1, 9, 0, 0), got)

	_, err = Resolve(Spec{Quarter: N(1), Year: N(2023)}, mk(2023, time.January, 1, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)

	got, err = Resolve(Spec{Quarter: N(1), Year: N(2023)}, mk(2022, time.December, 1, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.January, 1, 8, 0, 0), got)

	_, err = Resolve(Spec{Quarter: N(1), Year: N(2023)}, mk(2023, time.October, 1, 9, 0, 0))
	require.ErrorIs(t, err, ErrNoResult)
}

func TestResolveRelativeOffsets(t *testing.T) {
	t.Parallel()

	got, err := Resolve(Spec{Seconds: 200}, mk(2023, time.April, 1, 8, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 8, 18, 20), got)

	got, err = Resolve(Spec{Minutes: 90}, mk(2023, time.April, 1, 8, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 9, 45, 0), got)

	got, err = Resolve(Spec{Hours: 3}, mk(2023, time.April, 1, 8, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 1, 11, 15, 0), got)

	got, err = Resolve(Spec{Days: 4}, mk(2023, time.April, 1, 16, 25, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.April, 5, 16, 25, 0), got)

	got, err = Resolve(Spec{Weeks: 5}, mk(2023, time.April, 1, 17, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.May, 6, 17, 0, 0), got)

	got, err = Resolve(Spec{Months: 6}, mk(2023, time.July, 2, 18, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 2, 18, 10, 0), got)

	got, err = Resolve(Spec{Years: 1}, mk(2023, time.August, 3, 19, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.August, 3, 19, 5, 0), got)

	got, err = Resolve(Spec{Months: 1, Days: 3}, mk(2023, time.August, 3, 19, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.September, 6, 19, 5, 0), got)

	got, err = Resolve(Spec{Weeks: 3, Days: 2}, mk(2023, time.August, 3, 19, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.August, 26, 19, 5, 0), got)

	got, err = Resolve(Spec{Hours: 5, Minutes: 40}, mk(2023, time.August, 3, 19, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.August, 4, 0, 45, 0), got)

	got, err = Resolve(Spec{Years: 2, Months: 5}, mk(2023, time.August, 3, 19, 5, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2026, time.January, 3, 19, 5, 0), got)
}

func TestResolveRelativeClampsMonthEnds(t *testing.T) {
	t.Parallel()

	// One month after Jan 31 is the last day of February, not March 2nd.
	got, err := Resolve(Spec{Months: 1}, mk(2023, time.January, 31, 12, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.February, 28, 12, 0, 0), got)

	got, err = Resolve(Spec{Months: 1}, mk(2024, time.January, 31, 12, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.February, 29, 12, 0, 0), got)
}

func TestResolveRelativeQuarters(t *testing.T) {
	t.Parallel()

	// A quarter offset counts from the start of the reference quarter.
	got, err := Resolve(Spec{Quarters: 1}, mk(2023, time.September, 10, 15, 22, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2023, time.October, 1, 15, 22, 0), got)

	got, err = Resolve(Spec{Quarters: 2}, mk(2023, time.September, 10, 15, 22, 0))
	require.NoError(t, err)
	assert.Equal(t, mk(2024, time.January, 1, 15, 22, 0), got)
}

func TestResolveZones(t *testing.T) {
	t.Parallel()

	ny := time.FixedZone("UTC-5", -5*3600)

	// RefZone reinterprets a zone-naive reference's wall clock.
	got, err := Resolve(Spec{Special: Tonight, RefZone: ny}, mk(2023, time.October, 25, 11, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.October, 25, 20, 0, 0, 0, ny).Format(time.RFC3339), got.Format(time.RFC3339))

	// Zone relabels the result without shifting the wall clock.
	got, err = Resolve(Spec{Hour: N(9), Zone: ny}, mk(2023, time.April, 15, 8, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, ny, got.Location())
}

func TestResolveDeterminism(t *testing.T) {
	t.Parallel()

	ref := mk(2023, time.October, 25, 11, 30, 0)
	spec := Spec{Weekday: N(4), Hour: N(15)}
	first, err := Resolve(spec, ref)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Resolve(spec, ref)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveOutOfRangeFields(t *testing.T) {
	t.Parallel()

	ref := mk(2023, time.October, 25, 11, 30, 0)
	cases := map[string]Spec{
		"month 13 with weekday": {Weekday: N(0), Day: N(5), Month: N(13)},
		"month 13 with offset":  {Days: 1, Month: N(13)},
		"month 13 absolute":     {Month: N(13)},
		"negative month":        {Weekday: N(2), Month: N(-1)},
		"day 32 with weekday":   {Weekday: N(3), Day: N(32)},
		"day 32 with offset":    {Weeks: 1, Day: N(32)},
		"day 0 absolute":        {Day: N(0), Month: N(5)},
		"weekday 7":             {Weekday: N(7)},
		"negative weekday":      {Weekday: N(-2), Hour: N(9)},
		"quarter 5":             {Quarter: N(5)},
		"quarter 0 with offset": {Months: 1, Quarter: N(0)},
	}
	for name, spec := range cases {
		spec := spec
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(spec, ref)
			require.ErrorIs(t, err, ErrNoResult)
		})
	}
}
