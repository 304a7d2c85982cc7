package websocket

import (
	"fmt"

	"github.com/dukerupert/nightsleft/internal/date"
)

// Event change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Message tells connected clients that something they display changed.
// Clients refetch the countdown when they receive one.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     int64          `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func newMessage(entity, action string, id int64, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// EventChanged reports a change to event id; action is one of the Action
// constants.
func EventChanged(action string, id int64) Message {
	return newMessage("event", action, id, nil)
}

// HorizonExtended reports the new horizon after a "load more".
func HorizonExtended(years int) Message {
	return newMessage("horizon", "extended", 0, map[string]any{"horizon_years": years})
}

// DayRolledOver reports the new local date and the events falling on it.
func DayRolledOver(today date.Date, dueToday []string) Message {
	if dueToday == nil {
		dueToday = []string{}
	}
	return newMessage("day", "rollover", 0, map[string]any{
		"today":     today.String(),
		"due_today": dueToday,
	})
}
