// Package countdown expands stored events into dated occurrences and counts
// the nights left until each one.
package countdown

import "github.com/dukerupert/nightsleft/internal/date"

// maxLeapGap is the longest run of years without a Feb 29 (2096 to 2104).
const maxLeapGap = 8

// NextOccurrence returns the earliest date on or after today that falls on
// anchor's month and day. A Feb 29 anchor skips non-leap years. An anchor
// whose month and day exist in no year yields the zero Date.
func NextOccurrence(anchor, today date.Date) date.Date {
	for year := today.Year; year <= today.Year+maxLeapGap+1; year++ {
		candidate, ok := onYear(anchor, year)
		if ok && !candidate.Before(today) {
			return candidate
		}
	}
	return date.Date{}
}

// OccurrencesInRange returns anchor's month and day in every year from
// fromYear through toYear inclusive, skipping years where that day does not
// exist. Dates before today are the caller's to filter.
func OccurrencesInRange(anchor date.Date, fromYear, toYear int) []date.Date {
	if toYear < fromYear {
		return nil
	}
	out := make([]date.Date, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		if d, ok := onYear(anchor, year); ok {
			out = append(out, d)
		}
	}
	return out
}

// onYear moves anchor to year. It reports false for Feb 29 on a non-leap year.
func onYear(anchor date.Date, year int) (date.Date, bool) {
	d := date.New(year, anchor.Month, anchor.Day)
	return d, d.Valid()
}
