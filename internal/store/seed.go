package store

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

//go:embed defaults.yaml
var defaultSeed []byte

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	ID        int64     `yaml:"id"`
	Name      string    `yaml:"name"`
	Date      date.Date `yaml:"date"`
	Recurring bool      `yaml:"recurring"`
	Emoji     string    `yaml:"emoji"`
	Color     string    `yaml:"color"`
}

// DefaultSeed returns the built-in starter events.
func DefaultSeed() ([]model.Event, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// ReadSeedFile loads seed events from a YAML file.
func ReadSeedFile(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a YAML document with a top-level events list.
func LoadSeed(r io.Reader) ([]model.Event, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	events := make([]model.Event, 0, len(sf.Events))
	seen := make(map[int64]bool)
	for i, se := range sf.Events {
		name := strings.TrimSpace(se.Name)
		if name == "" {
			return nil, fmt.Errorf("seed event %d: name is required", i)
		}
		if !se.Date.Valid() {
			return nil, fmt.Errorf("seed event %d: date is required", i)
		}
		if se.ID < 0 {
			return nil, fmt.Errorf("seed event %d: id must not be negative", i)
		}
		if se.ID != 0 {
			if seen[se.ID] {
				return nil, fmt.Errorf("seed event %d: duplicate id %d", i, se.ID)
			}
			seen[se.ID] = true
		}
		events = append(events, model.Event{
			ID:        se.ID,
			Name:      name,
			Date:      se.Date,
			Recurring: se.Recurring,
			Emoji:     se.Emoji,
			Color:     se.Color,
		})
	}
	return events, nil
}

// Importer is the subset of a store needed to import seed events.
type Importer interface {
	Count() (int, error)
	Create(name string, anchor date.Date, recurring bool, emoji, color string) (*model.Event, error)
}

// ImportIfEmpty creates the seed events in dst when dst has none. It returns
// how many events were created.
func ImportIfEmpty(dst Importer, seed []model.Event) (int, error) {
	n, err := dst.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, e := range seed {
		if _, err := dst.Create(e.Name, e.Date, e.Recurring, e.Emoji, e.Color); err != nil {
			return 0, fmt.Errorf("import %q: %w", e.Name, err)
		}
	}
	return len(seed), nil
}
