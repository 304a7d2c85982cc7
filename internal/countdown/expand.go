package countdown

import (
	"fmt"
	"slices"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

// Occurrence is one dated instance of an event.
type Occurrence struct {
	Event     *model.Event
	Date      date.Date
	Year      int
	Recurring bool
}

// Key identifies an occurrence among all occurrences of the same expansion.
func (o Occurrence) Key() string {
	return fmt.Sprintf("%d-%d", o.Event.ID, o.Year)
}

// Expand generates the occurrences of events from today through the end of
// year today.Year+horizonYears. Recurring events yield one occurrence per
// year; one-shot events yield their own date. Past dates are dropped.
//
// The result is sorted by date; events on the same date keep input order.
// Occurrences point into events, which is neither copied nor modified.
func Expand(events []model.Event, today date.Date, horizonYears int) []Occurrence {
	if horizonYears < 0 {
		horizonYears = 0
	}
	lastYear := today.Year + horizonYears

	var out []Occurrence
	for i := range events {
		e := &events[i]

		if !e.Recurring {
			if !e.Date.Before(today) {
				out = append(out, Occurrence{Event: e, Date: e.Date, Year: e.Date.Year})
			}
			continue
		}

		for _, d := range OccurrencesInRange(e.Date, today.Year, lastYear) {
			if d.Before(today) {
				continue
			}
			out = append(out, Occurrence{Event: e, Date: d, Year: d.Year, Recurring: true})
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// YearBoundaries marks each position whose year is later than the previous
// one. Position 0 is never a boundary.
func YearBoundaries(occs []Occurrence) []bool {
	flags := make([]bool, len(occs))
	for i := 1; i < len(occs); i++ {
		flags[i] = occs[i].Year > occs[i-1].Year
	}
	return flags
}
