package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/nightsleft/internal/countdown"
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

func TestRender(t *testing.T) {
	events := []model.Event{
		{ID: 1, Name: "Christmas Eve", Date: date.New(2025, time.December, 24), Recurring: true, Emoji: "🎄"},
		{ID: 2, Name: "Tomorrow", Date: date.New(2025, time.December, 25), Emoji: "⭐"},
	}

	var buf bytes.Buffer
	render(&buf, countdown.Board(events, date.New(2025, time.December, 24), 1))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{"── 2025 ──", "Christmas Eve", "Tomorrow", "", "── 2026 ──", "Christmas Eve"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], w)
		}
	}

	if !strings.Contains(lines[1], "0 nights") || !strings.Contains(lines[1], "TODAY!") {
		t.Errorf("today line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "1 night") || strings.Contains(lines[2], "↻") {
		t.Errorf("one-shot line = %q", lines[2])
	}
	if !strings.Contains(lines[5], "365 nights") {
		t.Errorf("next year line = %q", lines[5])
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, nil)
	if buf.String() != "No upcoming events.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLoadEventsDefaultSeed(t *testing.T) {
	events, err := loadEvents(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("loadEvents: %v", err)
	}
	if len(events) != 4 {
		t.Errorf("got %d events, want 4", len(events))
	}

	if _, err := loadEvents(context.Background(), "http://localhost", "seed.yaml", ""); err == nil {
		t.Error("expected error when both sources are given")
	}
}

func TestNewHorizon(t *testing.T) {
	tests := []struct {
		years   int
		more    int
		want    int
		wantErr bool
	}{
		{3, 0, 3, false},
		{1, 0, 1, false},
		{3, 2, 7, false},
		{0, 0, 0, true},
		{-1, 0, 0, true},
		{3, -1, 0, true},
	}

	for _, tt := range tests {
		h, err := newHorizon(tt.years, tt.more)
		if tt.wantErr {
			if err == nil {
				t.Errorf("newHorizon(%d, %d) should error", tt.years, tt.more)
			}
			continue
		}
		if err != nil {
			t.Errorf("newHorizon(%d, %d) error: %v", tt.years, tt.more, err)
			continue
		}
		if got := h.Years(); got != tt.want {
			t.Errorf("newHorizon(%d, %d).Years() = %d, want %d", tt.years, tt.more, got, tt.want)
		}
	}
}

func TestHashToken(t *testing.T) {
	var out bytes.Buffer
	if err := hashToken(strings.NewReader("s3cret\n"), &out); err != nil {
		t.Fatalf("hashToken: %v", err)
	}
	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("printed hash does not verify: %v", err)
	}

	if err := hashToken(strings.NewReader("  \n"), &out); err == nil {
		t.Error("expected error for empty token")
	}
}
