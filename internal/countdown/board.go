package countdown

import (
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

// Entry is an occurrence annotated for display.
type Entry struct {
	Occurrence
	NightsLeft   int
	YearBoundary bool
}

// Board expands events and annotates every occurrence with its nights left
// and year-boundary flag.
func Board(events []model.Event, today date.Date, horizonYears int) []Entry {
	occs := Expand(events, today, horizonYears)
	boundaries := YearBoundaries(occs)

	entries := make([]Entry, len(occs))
	for i, o := range occs {
		entries[i] = Entry{
			Occurrence:   o,
			NightsLeft:   NightsUntil(o.Date, today),
			YearBoundary: boundaries[i],
		}
	}
	return entries
}
