package store

import (
	"errors"
	"testing"
	"time"

	"github.com/dukerupert/nightsleft/internal/database"
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

func setupTestDB(t *testing.T) *EventStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEventStore(db)
}

func TestCreateAndGetByID(t *testing.T) {
	s := setupTestDB(t)

	anchor := date.New(2025, time.December, 24)
	event, err := s.Create("Christmas Eve", anchor, true, "🎄", "#4ECDC4")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Name != "Christmas Eve" {
		t.Errorf("name = %q, want %q", event.Name, "Christmas Eve")
	}
	if event.Date != anchor {
		t.Errorf("date = %v, want %v", event.Date, anchor)
	}
	if !event.Recurring {
		t.Error("recurring should be true")
	}
	if event.Emoji != "🎄" {
		t.Errorf("emoji = %q, want %q", event.Emoji, "🎄")
	}
	if event.Color != "#4ECDC4" {
		t.Errorf("color = %q, want %q", event.Color, "#4ECDC4")
	}
	if event.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Name != "Christmas Eve" {
		t.Errorf("got name = %q, want %q", got.Name, "Christmas Eve")
	}
}

func TestCreateDefaults(t *testing.T) {
	s := setupTestDB(t)

	event, err := s.Create("Trip", date.New(2026, time.July, 1), false, "", "")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Emoji != model.DefaultEmoji {
		t.Errorf("emoji = %q, want %q", event.Emoji, model.DefaultEmoji)
	}
	if event.Color != model.ColorForID(event.ID) {
		t.Errorf("color = %q, want %q", event.Color, model.ColorForID(event.ID))
	}
	if event.Recurring {
		t.Error("recurring should be false")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetByID(999)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent event")
	}
}

func TestList(t *testing.T) {
	s := setupTestDB(t)

	s.Create("First", date.New(2026, time.March, 1), false, "", "")
	s.Create("Second", date.New(2025, time.January, 1), true, "", "")
	s.Create("Third", date.New(2027, time.May, 5), false, "", "")

	events, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if events[i].Name != want {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Name, want)
		}
	}
}

func TestListRejectsCorruptDate(t *testing.T) {
	s := setupTestDB(t)

	if _, err := s.db.Exec(`INSERT INTO events (name, anchor_date) VALUES (?, ?)`, "Broken", "2025-13-45"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := s.List()
	if err == nil {
		t.Fatal("expected error for corrupt date")
	}
	var pe *date.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want a *date.ParseError in the chain", err)
	}
}

func TestUpdate(t *testing.T) {
	s := setupTestDB(t)

	event, err := s.Create("Original", date.New(2026, time.February, 5), false, "🎉", "")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	name := "Renamed"
	newDate := date.New(2026, time.February, 6)
	recurring := true
	updated, err := s.Update(event.ID, model.EventPatch{Name: &name, Date: &newDate, Recurring: &recurring})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "Renamed")
	}
	if updated.Date != newDate {
		t.Errorf("date = %v, want %v", updated.Date, newDate)
	}
	if !updated.Recurring {
		t.Error("recurring should be true after update")
	}
	if updated.Emoji != "🎉" {
		t.Errorf("emoji = %q, want unchanged", updated.Emoji)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := setupTestDB(t)

	name := "x"
	if _, err := s.Update(42, model.EventPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := setupTestDB(t)

	event, err := s.Create("To Delete", date.New(2026, time.February, 5), false, "", "")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := s.Delete(event.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get by id after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}

	if err := s.Delete(event.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCount(t *testing.T) {
	s := setupTestDB(t)

	n, _ := s.Count()
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	s.Create("One", date.New(2026, time.February, 5), false, "", "")
	n, _ = s.Count()
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
