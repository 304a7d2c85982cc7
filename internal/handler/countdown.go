package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dukerupert/nightsleft/internal/countdown"
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
	ws "github.com/dukerupert/nightsleft/internal/websocket"
)

// maxQueryYears bounds the horizon a single request may ask for.
const maxQueryYears = 100

type eventLister interface {
	List() ([]model.Event, error)
}

// HorizonSaver persists the horizon after it grows. It may be nil.
type HorizonSaver interface {
	SetHorizonYears(years int) error
}

type CountdownHandler struct {
	events  eventLister
	horizon *countdown.Horizon
	saver   HorizonSaver
	hub     broadcaster
	now     func() time.Time
	logger  *slog.Logger
}

func NewCountdownHandler(events eventLister, horizon *countdown.Horizon, saver HorizonSaver, hub broadcaster, now func() time.Time, logger *slog.Logger) *CountdownHandler {
	return &CountdownHandler{
		events:  events,
		horizon: horizon,
		saver:   saver,
		hub:     hub,
		now:     now,
		logger:  logger,
	}
}

// Countdown serves the upcoming occurrences of every event. The optional
// years and today query parameters override the server horizon and clock.
func (h *CountdownHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	years := h.horizon.Years()
	if s := r.URL.Query().Get("years"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > maxQueryYears {
			writeError(w, http.StatusBadRequest, "years must be an integer between 0 and 100")
			return
		}
		years = n
	}

	today := date.Today(h.now)
	if s := r.URL.Query().Get("today"); s != "" {
		d, err := date.Decode(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "today must be YYYY-MM-DD")
			return
		}
		today = d
	}

	events, err := h.events.List()
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	board := countdown.Board(events, today, years)
	resp := model.Countdown{
		Today:        today,
		HorizonYears: years,
		Entries:      make([]model.CountdownEntry, len(board)),
	}
	for i, e := range board {
		resp.Entries[i] = model.CountdownEntry{
			Key:          e.Key(),
			Event:        *e.Event,
			Date:         e.Date,
			Year:         e.Year,
			Recurring:    e.Recurring,
			NightsLeft:   e.NightsLeft,
			YearBoundary: e.YearBoundary,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *CountdownHandler) GetHorizon(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"horizonYears": h.horizon.Years()})
}

// ExtendHorizon grows the server horizon by one step, the "load more" action.
func (h *CountdownHandler) ExtendHorizon(w http.ResponseWriter, r *http.Request) {
	years := h.horizon.Extend()

	if h.saver != nil {
		if err := h.saver.SetHorizonYears(years); err != nil {
			h.logger.Error("failed to save horizon", "years", years, "error", err)
		}
	}

	h.hub.Broadcast(ws.HorizonExtended(years))
	writeJSON(w, http.StatusOK, map[string]int{"horizonYears": years})
}

func (h *CountdownHandler) Palette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"emojis": model.Emojis,
		"colors": model.Colors,
	})
}
