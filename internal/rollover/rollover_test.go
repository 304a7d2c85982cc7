package rollover

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
	ws "github.com/dukerupert/nightsleft/internal/websocket"
)

type fakeLister struct {
	events []model.Event
	err    error
}

func (f *fakeLister) List() ([]model.Event, error) { return f.events, f.err }

type recordingHub struct {
	mu   sync.Mutex
	msgs []ws.Message
}

func (h *recordingHub) Broadcast(msg ws.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvents() []model.Event {
	return []model.Event{
		{ID: 1, Name: "Christmas Eve", Date: date.New(2020, time.December, 24), Recurring: true},
		{ID: 2, Name: "Launch", Date: date.New(2025, time.December, 24)},
		{ID: 3, Name: "New Year", Date: date.New(2026, time.January, 1), Recurring: true},
	}
}

func TestDueToday(t *testing.T) {
	got := DueToday(testEvents(), date.New(2025, time.December, 24))
	want := []string{"Christmas Eve", "Launch"}
	if !slices.Equal(got, want) {
		t.Errorf("DueToday() = %v, want %v", got, want)
	}

	if got := DueToday(testEvents(), date.New(2025, time.December, 25)); len(got) != 0 {
		t.Errorf("DueToday(Dec 25) = %v, want empty", got)
	}
}

func TestTickBroadcastsOncePerDay(t *testing.T) {
	clock := time.Date(2025, 12, 23, 23, 59, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	hub := &recordingHub{}

	s := NewScheduler("", time.UTC, &fakeLister{events: testEvents()}, hub, now, testLogger())

	s.Tick()
	if len(hub.msgs) != 0 {
		t.Fatalf("no rollover yet, got %d messages", len(hub.msgs))
	}

	clock = time.Date(2025, 12, 24, 0, 0, 1, 0, time.UTC)
	s.Tick()
	s.Tick()

	if len(hub.msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(hub.msgs))
	}
	msg := hub.msgs[0]
	if msg.Type != "day_rollover" {
		t.Errorf("type = %q, want day_rollover", msg.Type)
	}
	if msg.Extra["today"] != "2025-12-24" {
		t.Errorf("today = %v", msg.Extra["today"])
	}
	due, _ := msg.Extra["due_today"].([]string)
	if !slices.Equal(due, []string{"Christmas Eve", "Launch"}) {
		t.Errorf("due_today = %v", msg.Extra["due_today"])
	}
}

func TestTickListError(t *testing.T) {
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	hub := &recordingHub{}

	s := NewScheduler("", time.UTC, &fakeLister{err: errors.New("db down")}, hub, now, testLogger())
	clock = clock.Add(24 * time.Hour)
	s.Tick()

	if len(hub.msgs) != 0 {
		t.Errorf("expected no broadcast on list error, got %d", len(hub.msgs))
	}
}

func TestValidateSpec(t *testing.T) {
	for _, spec := range []string{"@midnight", "0 0 * * *", "@every 1h"} {
		if err := ValidateSpec(spec); err != nil {
			t.Errorf("ValidateSpec(%q) = %v", spec, err)
		}
	}
	if err := ValidateSpec("every day"); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("@midnight", time.UTC, &fakeLister{}, &recordingHub{}, time.Now, testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Stop()

	bad := NewScheduler("not a schedule", time.UTC, &fakeLister{}, &recordingHub{}, time.Now, testLogger())
	if err := bad.Start(); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
