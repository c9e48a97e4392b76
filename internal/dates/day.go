// Package dates holds the calendar-day primitives shared by the store and
// the aggregator. A Day is a civil date with no time of day and no zone.
package dates

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

var (
	ErrInvalidDate  = errors.New("dates: invalid date")
	ErrInvalidRange = errors.New("dates: invalid range")
)

// Layout is the canonical day string used for tasks, challenges and lessons.
const Layout = "2006-01-02"

// TimestampLayout matches the ISO strings stored for transactions and
// trash entries (millisecond precision, UTC, literal Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay accepts a bare YYYY-MM-DD or an ISO timestamp and returns the
// wall-clock day written in the string. Time of day and any embedded
// offset are ignored.
func ParseDay(s string) (Day, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Day{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if len(raw) == len(Layout) {
		t, err := time.Parse(Layout, raw)
		if err != nil {
			return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return FromTime(t), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return FromTime(t), nil
		}
	}
	return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// MustParseDay is ParseDay for literals known to be valid.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime takes the date components of t in t's own location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Today is the calendar day of now in now's own location. Callers pass
// time.Now(), which is local time.
func Today(now time.Time) Day {
	return FromTime(now)
}

func Of(year int, month time.Month, day int) Day {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Time returns midnight UTC of d; only used for arithmetic.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) AddDays(n int) Day {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Day) Compare(o Day) int {
	return d.Time().Compare(o.Time())
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

// SameDay reports calendar-day equality of two stored date strings.
func SameDay(a, b string) (bool, error) {
	da, err := ParseDay(a)
	if err != nil {
		return false, err
	}
	db, err := ParseDay(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}

// Range yields the consecutive days [center-before, center+after] in
// ascending order. The sequence is computed on demand and can be ranged
// over any number of times.
func Range(center Day, before, after int) (iter.Seq[Day], error) {
	if before < 0 || after < 0 {
		return nil, fmt.Errorf("%w: before=%d after=%d", ErrInvalidRange, before, after)
	}
	if center.IsZero() {
		return nil, fmt.Errorf("%w: zero center", ErrInvalidDate)
	}
	return func(yield func(Day) bool) {
		for i := -before; i <= after; i++ {
			if !yield(center.AddDays(i)) {
				return
			}
		}
	}, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatTimestamp renders t the way snapshot timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ZonedTimestampLayout keeps the wall clock and offset of the writer.
const ZonedTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatZonedTimestamp renders t in its own location with its offset, so
// ParseDay of the result is Today(t). Transaction dates use it.
func FormatZonedTimestamp(t time.Time) string {
	return t.Format(ZonedTimestampLayout)
}

// ParseClock parses a same-day HH:MM time of day.
func ParseClock(s string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrInvalidDate, s)
	}
	return t.Hour(), t.Minute(), nil
}

// MonthGrid lays out a month Sunday-first: the leading zero Days pad
// day 1 onto its weekday column, followed by every day of the month.
func MonthGrid(year int, month time.Month) []Day {
	first := Of(year, month, 1)
	lead := int(first.Weekday())
	n := DaysIn(year, month)
	out := make([]Day, lead, lead+n)
	for d := 1; d <= n; d++ {
		out = append(out, Of(year, month, d))
	}
	return out
}
