package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/nightsleft/internal/countdown"
	"github.com/dukerupert/nightsleft/internal/handler"
	"github.com/dukerupert/nightsleft/internal/middleware"
	ws "github.com/dukerupert/nightsleft/internal/websocket"
)

// HorizonStore persists the horizon between restarts. store.SettingsStore
// implements it.
type HorizonStore interface {
	HorizonYears() (int, error)
	SetHorizonYears(years int) error
}

type Config struct {
	HorizonYears   int
	HorizonStep    int
	TokenHash      string
	AllowedOrigins []string
	// TrustProxyHeaders keys rate limits and logs on X-Real-IP and
	// X-Forwarded-For instead of the connection address.
	TrustProxyHeaders bool
	// Now is the clock "today" is read from. It defaults to time.Now.
	Now func() time.Time
	// WriteLimit writes per client IP are allowed every WriteWindow.
	WriteLimit  int
	WriteWindow time.Duration
}

type Server struct {
	hub         *ws.Hub
	horizon     *countdown.Horizon
	eventH      *handler.EventHandler
	countdownH  *handler.CountdownHandler
	rateLimiter *middleware.RateLimiter
	cfg         Config
	logger      *slog.Logger
}

// New wires the handlers over events. horizons may be nil, in which case
// the horizon lives only in memory.
func New(events handler.EventStore, horizons HorizonStore, cfg Config, logger *slog.Logger) *Server {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.WriteLimit <= 0 {
		cfg.WriteLimit = 30
	}
	if cfg.WriteWindow <= 0 {
		cfg.WriteWindow = time.Minute
	}

	hub := ws.NewHub(logger.With("component", "websocket"))
	horizon := countdown.NewHorizon(cfg.HorizonYears, cfg.HorizonStep)

	var saver handler.HorizonSaver
	if horizons != nil {
		saver = horizons
		persisted, err := horizons.HorizonYears()
		if err != nil {
			logger.Error("failed to load persisted horizon", "error", err)
		} else {
			horizon.Raise(persisted)
		}
	}

	return &Server{
		hub:         hub,
		horizon:     horizon,
		eventH:      handler.NewEventHandler(events, hub, logger.With("component", "event")),
		countdownH:  handler.NewCountdownHandler(events, horizon, saver, hub, cfg.Now, logger.With("component", "countdown")),
		rateLimiter: middleware.NewRateLimiter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// Hub returns the websocket hub for background broadcasters.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Horizon returns the server's horizon.
func (s *Server) Horizon() *countdown.Horizon {
	return s.horizon
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.cfg.AllowedOrigins, s.logger.With("component", "websocket")))

	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.Handle("POST /api/events", s.write(s.eventH.Create))
	mux.Handle("PATCH /api/events/{id}", s.write(s.eventH.Update))
	mux.Handle("DELETE /api/events/{id}", s.write(s.eventH.Delete))

	mux.HandleFunc("GET /api/countdown", s.countdownH.Countdown)
	mux.HandleFunc("GET /api/horizon", s.countdownH.GetHorizon)
	mux.Handle("POST /api/horizon/extend", s.write(s.countdownH.ExtendHorizon))
	mux.HandleFunc("GET /api/palette", s.countdownH.Palette)

	return middleware.RequestLogger(s.logger.With("component", "http"), middleware.ClientIP(s.cfg.TrustProxyHeaders))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}

// write guards a mutating handler with the per-IP rate limit and, when a
// token hash is configured, the bearer token check.
func (s *Server) write(h http.HandlerFunc) http.Handler {
	limited := middleware.RateLimit(s.rateLimiter, middleware.ClientIP(s.cfg.TrustProxyHeaders), s.cfg.WriteLimit, s.cfg.WriteWindow)
	return limited(middleware.RequireToken(s.cfg.TokenHash)(h))
}
