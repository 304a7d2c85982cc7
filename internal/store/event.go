package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

// ErrNotFound is returned by mutations on an event that does not exist.
var ErrNotFound = errors.New("event not found")

const eventColumns = `id, name, anchor_date, recurring, emoji, color, created_at, updated_at`

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Create(name string, anchor date.Date, recurring bool, emoji, color string) (*model.Event, error) {
	if emoji == "" {
		emoji = model.DefaultEmoji
	}

	result, err := s.db.Exec(
		`INSERT INTO events (name, anchor_date, recurring, emoji, color) VALUES (?, ?, ?, ?, ?)`,
		name, date.Encode(anchor), boolToInt(recurring), emoji, color,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	e, err := scanEvent(s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return e, nil
}

// List returns every event ordered by id.
func (s *EventStore) List() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Update(id int64, patch model.EventPatch) (*model.Event, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	e := patch.Apply(*existing)
	_, err = s.db.Exec(
		`UPDATE events SET name = ?, anchor_date = ?, recurring = ?, emoji = ?, color = ? WHERE id = ?`,
		e.Name, date.Encode(e.Date), boolToInt(e.Recurring), e.Emoji, e.Color, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return s.GetByID(id)
}

func (s *EventStore) Delete(id int64) error {
	result, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored events.
func (s *EventStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	var anchor string
	var recurringInt int

	if err := row.Scan(&e.ID, &e.Name, &anchor, &recurringInt, &e.Emoji, &e.Color, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	d, err := date.Decode(anchor)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", e.ID, err)
	}
	e.Date = d
	e.Recurring = recurringInt != 0
	fillDefaults(&e)

	return &e, nil
}

// fillDefaults gives events stored without an icon or color their fallbacks.
func fillDefaults(e *model.Event) {
	if e.Emoji == "" {
		e.Emoji = model.DefaultEmoji
	}
	if e.Color == "" {
		e.Color = model.ColorForID(e.ID)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
