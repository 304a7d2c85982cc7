package store

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

// MemoryStore keeps events in process memory. It backs offline mode and has
// the same method set as EventStore.
type MemoryStore struct {
	mu     sync.RWMutex
	events []model.Event
	nextID int64
	now    func() time.Time
}

// NewMemoryStore returns a store holding a copy of seed. Seed events keep
// their ids when set and unique; the rest are numbered after the highest one.
func NewMemoryStore(seed []model.Event, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	s := &MemoryStore{now: now, nextID: 1}
	for _, e := range seed {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	taken := make(map[int64]bool, len(seed))
	for _, e := range seed {
		if e.ID <= 0 || taken[e.ID] {
			e.ID = s.nextID
			s.nextID++
		}
		taken[e.ID] = true
		fillDefaults(&e)
		s.events = append(s.events, e)
	}
	slices.SortFunc(s.events, func(a, b model.Event) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return s
}

func (s *MemoryStore) Create(name string, anchor date.Date, recurring bool, emoji, color string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	e := model.Event{
		ID:        s.nextID,
		Name:      name,
		Date:      anchor,
		Recurring: recurring,
		Emoji:     emoji,
		Color:     color,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.nextID++
	fillDefaults(&e)
	s.events = append(s.events, e)

	return &e, nil
}

func (s *MemoryStore) GetByID(id int64) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	e := s.events[i]
	return &e, nil
}

// List returns a copy of every event ordered by id.
func (s *MemoryStore) List() ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events), nil
}

func (s *MemoryStore) Update(id int64, patch model.EventPatch) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	e := patch.Apply(s.events[i])
	e.UpdatedAt = s.now().UTC()
	fillDefaults(&e)
	s.events[i] = e

	return &e, nil
}

func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.events = slices.Delete(s.events, i, i+1)
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}

func (s *MemoryStore) indexOf(id int64) int {
	return slices.IndexFunc(s.events, func(e model.Event) bool {
		return e.ID == id
	})
}
