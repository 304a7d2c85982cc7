package store

import (
	"errors"
	"testing"

	"github.com/dukerupert/nightsleft/internal/database"
)

func setupSettingsTestDB(t *testing.T) *SettingsStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSettingsStore(db)
}

func TestSettingsSetAndGet(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := ss.Get("theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "dark" {
		t.Errorf("theme = %q, want %q", got, "dark")
	}

	// Overwrite
	if err := ss.Set("theme", "light"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	got, _ = ss.Get("theme")
	if got != "light" {
		t.Errorf("theme = %q, want %q", got, "light")
	}
}

func TestSettingsGetMissing(t *testing.T) {
	ss := setupSettingsTestDB(t)

	_, err := ss.Get("nope")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSettingNotFound", err)
	}
}

func TestSettingsHorizonYears(t *testing.T) {
	ss := setupSettingsTestDB(t)

	n, err := ss.HorizonYears()
	if err != nil {
		t.Fatalf("horizon: %v", err)
	}
	if n != 0 {
		t.Errorf("unset horizon = %d, want 0", n)
	}

	if err := ss.SetHorizonYears(7); err != nil {
		t.Fatalf("set horizon: %v", err)
	}
	n, err = ss.HorizonYears()
	if err != nil {
		t.Fatalf("horizon: %v", err)
	}
	if n != 7 {
		t.Errorf("horizon = %d, want 7", n)
	}
}

func TestSettingsHorizonYearsCorrupt(t *testing.T) {
	ss := setupSettingsTestDB(t)

	ss.Set("horizon_years", "many")
	if _, err := ss.HorizonYears(); err == nil {
		t.Error("expected error for non-numeric horizon")
	}
}
