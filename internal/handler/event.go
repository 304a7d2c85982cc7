package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
	"github.com/dukerupert/nightsleft/internal/store"
	ws "github.com/dukerupert/nightsleft/internal/websocket"
)

// EventStore is implemented by store.EventStore and store.MemoryStore.
type EventStore interface {
	List() ([]model.Event, error)
	GetByID(id int64) (*model.Event, error)
	Create(name string, anchor date.Date, recurring bool, emoji, color string) (*model.Event, error)
	Update(id int64, patch model.EventPatch) (*model.Event, error)
	Delete(id int64) error
}

type EventHandler struct {
	store  EventStore
	hub    broadcaster
	logger *slog.Logger
}

func NewEventHandler(s EventStore, hub broadcaster, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: s, hub: hub, logger: logger}
}

// eventRequest mirrors model.Event's JSON names. Pointers tell a PATCH which
// fields were sent.
type eventRequest struct {
	Title        *string `json:"title"`
	Date         *string `json:"date"`
	IsRepeatable *bool   `json:"isRepeatable"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
}

// patch validates the request and converts it to an EventPatch. It returns a
// client-facing message when the request is invalid.
func (req eventRequest) patch() (model.EventPatch, string) {
	var p model.EventPatch

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return p, "title is required"
		}
		p.Name = &title
	}

	if req.Date != nil {
		d, err := date.Decode(*req.Date)
		if err != nil {
			return p, "date must be YYYY-MM-DD"
		}
		p.Date = &d
	}

	if req.Color != nil && *req.Color != "" && !hexColorRegexp.MatchString(*req.Color) {
		return p, "color must be a hex color (e.g. #FF0000)"
	}

	p.Recurring = req.IsRepeatable
	p.Emoji = req.Icon
	p.Color = req.Color
	return p, ""
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List()
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == nil {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Date == nil {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	p, msg := req.patch()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var recurring bool
	if p.Recurring != nil {
		recurring = *p.Recurring
	}
	var emoji, color string
	if p.Emoji != nil {
		emoji = *p.Emoji
	}
	if p.Color != nil {
		color = *p.Color
	}

	event, err := h.store.Create(*p.Name, *p.Date, recurring, emoji, color)
	if err != nil {
		h.logger.Error("failed to create event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	h.hub.Broadcast(ws.EventChanged(ws.ActionCreated, event.ID))
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	event, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("failed to get event", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	if event == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	p, msg := req.patch()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	event, err := h.store.Update(id, p)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update event", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	h.hub.Broadcast(ws.EventChanged(ws.ActionUpdated, event.ID))
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete event", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	h.hub.Broadcast(ws.EventChanged(ws.ActionDeleted, id))
	w.WriteHeader(http.StatusNoContent)
}
