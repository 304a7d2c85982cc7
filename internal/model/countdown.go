package model

import "github.com/dukerupert/nightsleft/internal/date"

// Countdown is the countdown endpoint's response body.
type Countdown struct {
	Today        date.Date        `json:"today"`
	HorizonYears int              `json:"horizonYears"`
	Entries      []CountdownEntry `json:"entries"`
}

// CountdownEntry is one upcoming occurrence of an event.
type CountdownEntry struct {
	Key          string    `json:"key"`
	Event        Event     `json:"event"`
	Date         date.Date `json:"date"`
	Year         int       `json:"year"`
	Recurring    bool      `json:"recurring"`
	NightsLeft   int       `json:"nightsLeft"`
	YearBoundary bool      `json:"yearBoundary"`
}
