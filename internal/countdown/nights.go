package countdown

import "github.com/dukerupert/nightsleft/internal/date"

// NightsUntil returns the whole nights between today and target. Today and
// anything already past count as zero.
func NightsUntil(target, today date.Date) int {
	n := target.DayNumber() - today.DayNumber()
	if n < 0 {
		return 0
	}
	return n
}
