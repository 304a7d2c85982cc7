// Package rollover notifies websocket clients when the local calendar day
// changes, since every countdown is relative to "today".
package rollover

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dukerupert/nightsleft/internal/countdown"
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
	ws "github.com/dukerupert/nightsleft/internal/websocket"
)

// DefaultSpec fires once a day at local midnight.
const DefaultSpec = "@midnight"

type eventLister interface {
	List() ([]model.Event, error)
}

type broadcaster interface {
	Broadcast(msg ws.Message)
}

// Scheduler broadcasts a day_rollover message on a cron schedule.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	spec   string
	events eventLister
	hub    broadcaster
	now    func() time.Time
	logger *slog.Logger
	last   date.Date
}

// NewScheduler creates a scheduler evaluating spec in loc. An empty spec
// means DefaultSpec.
func NewScheduler(spec string, loc *time.Location, events eventLister, hub broadcaster, now func() time.Time, logger *slog.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		spec:   spec,
		events: events,
		hub:    hub,
		now:    now,
		logger: logger,
		last:   date.Today(now),
	}
}

// ValidateSpec reports whether spec is a schedule the scheduler accepts.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("parse rollover schedule %q: %w", spec, err)
	}
	return nil
}

// Start registers the job and starts the cron goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Tick); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	s.cron.Start()
	s.logger.Info("rollover scheduler started", "schedule", s.spec)
	return nil
}

// Stop stops the cron goroutine and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Tick broadcasts the current date and the names of events falling on it.
// It does nothing when the date has not changed since the last broadcast.
func (s *Scheduler) Tick() {
	today := date.Today(s.now)

	s.mu.Lock()
	if !today.After(s.last) {
		s.mu.Unlock()
		return
	}
	s.last = today
	s.mu.Unlock()

	events, err := s.events.List()
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		return
	}

	due := DueToday(events, today)
	s.hub.Broadcast(ws.DayRolledOver(today, due))
	s.logger.Info("day rolled over", "today", today, "due", len(due))
}

// DueToday returns the names of events with an occurrence on today, in
// board order.
func DueToday(events []model.Event, today date.Date) []string {
	names := []string{}
	for _, e := range countdown.Board(events, today, 0) {
		if e.NightsLeft != 0 {
			break
		}
		names = append(names, e.Event.Name)
	}
	return names
}
