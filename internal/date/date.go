// Package date models timezone-naive calendar dates and their canonical
// YYYY-MM-DD text form.
package date

import (
	"cmp"
	"fmt"
	"time"
)

// Layout is the canonical text layout of a Date.
const Layout = "2006-01-02"

// Date is a calendar date with no time-of-day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for the given fields. It does not validate them; use
// Valid or Decode when the input is untrusted.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Of returns the wall-clock date of t in t's own location. No UTC conversion
// happens, so a local time just before midnight stays on its local day.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today reads the injected clock and returns its wall-clock date.
func Today(now func() time.Time) Date {
	return Of(now())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names a real day in years 1 through 9999.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysIn(d.Year, d.Month)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other in calendar order.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Of(d.midnightUTC().AddDate(0, 0, n))
}

// DayNumber returns the number of civil days between 1970-01-01 and d.
// Differences of day numbers are exact whole-day counts.
func (d Date) DayNumber() int {
	return int(d.midnightUTC().Unix() / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// midnightUTC anchors d on a zone without DST so day arithmetic is exact.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return Encode(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("marshal date: invalid date %04d-%02d-%02d", d.Year, int(d.Month), d.Day)
	}
	return []byte(Encode(d)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Decode(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
