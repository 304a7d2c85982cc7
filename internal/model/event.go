package model

import (
	"time"

	"github.com/dukerupert/nightsleft/internal/date"
)

// DefaultEmoji is used when an event is created without an icon.
const DefaultEmoji = "🎉"

// Event is a named calendar date, either one-shot or repeating every year on
// the month and day of Date. JSON names follow the events API.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"title"`
	Date      date.Date `json:"date"`
	Recurring bool      `json:"isRepeatable"`
	Emoji     string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventPatch holds a partial update. Nil fields are left unchanged.
type EventPatch struct {
	Name      *string
	Date      *date.Date
	Recurring *bool
	Emoji     *string
	Color     *string
}

// Apply returns e with the non-nil fields of p applied.
func (p EventPatch) Apply(e Event) Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Recurring != nil {
		e.Recurring = *p.Recurring
	}
	if p.Emoji != nil {
		e.Emoji = *p.Emoji
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	return e
}
