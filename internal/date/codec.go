package date

import (
	"fmt"
	"time"
)

// ParseError reports a string that is not a valid YYYY-MM-DD date.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date %q: %s", e.Input, e.Reason)
}

// Encode formats d as zero-padded YYYY-MM-DD from its own fields.
func Encode(d Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Decode parses a strict YYYY-MM-DD string. Month and day are range checked,
// including Feb 29 on non-leap years.
func Decode(s string) (Date, error) {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return Date{}, &ParseError{Input: s, Reason: "want YYYY-MM-DD"}
	}

	year, ok := digits(s[0:4])
	if !ok {
		return Date{}, &ParseError{Input: s, Reason: "year is not numeric"}
	}
	month, ok := digits(s[5:7])
	if !ok {
		return Date{}, &ParseError{Input: s, Reason: "month is not numeric"}
	}
	day, ok := digits(s[8:10])
	if !ok {
		return Date{}, &ParseError{Input: s, Reason: "day is not numeric"}
	}

	if year < 1 {
		return Date{}, &ParseError{Input: s, Reason: "year out of range"}
	}
	if month < 1 || month > 12 {
		return Date{}, &ParseError{Input: s, Reason: "month out of range"}
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, &ParseError{Input: s, Reason: "day out of range"}
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func digits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
