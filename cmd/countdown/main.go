// Command countdown prints how many nights are left until upcoming events,
// reading them from a nightsleft server or from a seed file.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dukerupert/nightsleft/internal/client"
	"github.com/dukerupert/nightsleft/internal/countdown"
	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/logging"
	"github.com/dukerupert/nightsleft/internal/middleware"
	"github.com/dukerupert/nightsleft/internal/model"
	"github.com/dukerupert/nightsleft/internal/store"
)

func main() {
	serverURL := flag.String("server", "", "nightsleft server URL, e.g. http://localhost:8080")
	seedPath := flag.String("seed", "", "seed YAML file to read instead of a server")
	token := flag.String("token", os.Getenv("NIGHTSLEFT_TOKEN"), "bearer token for the server")
	years := flag.Int("years", countdown.DefaultHorizonYears, "years past the current one to show")
	more := flag.Int("more", 0, "extend the horizon this many times")
	todayFlag := flag.String("today", "", "date to count from (YYYY-MM-DD), default today")
	logLevel := flag.String("log-level", "warn", "log level")
	hash := flag.Bool("hash-token", false, "read a token from stdin, print its NIGHTSLEFT_TOKEN_HASH and exit")
	flag.Parse()

	logger := logging.Setup(*logLevel)

	if *hash {
		if err := hashToken(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	horizon, err := newHorizon(*years, *more)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	today := date.Today(time.Now)
	if *todayFlag != "" {
		d, err := date.Decode(*todayFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		today = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	events, err := loadEvents(ctx, *serverURL, *seedPath, *token)
	if err != nil {
		logger.Error("failed to load events", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Debug("expanding", "events", len(events), "today", today, "horizon_years", horizon.Years())

	render(os.Stdout, countdown.Board(events, today, horizon.Years()))
}

// newHorizon starts at years and applies more extensions.
func newHorizon(years, more int) (*countdown.Horizon, error) {
	if years < 1 {
		return nil, fmt.Errorf("-years must be at least 1, got %d", years)
	}
	if more < 0 {
		return nil, fmt.Errorf("-more must not be negative, got %d", more)
	}
	h := countdown.NewHorizon(years, countdown.DefaultHorizonStep)
	for range more {
		h.Extend()
	}
	return h, nil
}

// hashToken reads one token line from r and writes its bcrypt hash to w.
func hashToken(r io.Reader, w io.Writer) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return errors.New("read token: empty token")
	}
	hash, err := middleware.HashToken(token)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}

func loadEvents(ctx context.Context, serverURL, seedPath, token string) ([]model.Event, error) {
	switch {
	case serverURL != "" && seedPath != "":
		return nil, errors.New("-server and -seed are mutually exclusive")
	case serverURL != "":
		return client.New(serverURL, client.WithToken(token)).List(ctx)
	case seedPath != "":
		return store.ReadSeedFile(seedPath)
	default:
		return store.DefaultSeed()
	}
}

// render prints one line per entry with a year header at each boundary.
func render(w io.Writer, entries []countdown.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No upcoming events.")
		return
	}
	for i, e := range entries {
		if i == 0 || e.YearBoundary {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "── %d ──\n", e.Year)
		}

		line := fmt.Sprintf("%s %-24s %s  %5d %s", e.Event.Emoji, e.Event.Name, e.Date, e.NightsLeft, nightsWord(e.NightsLeft))
		if e.Recurring {
			line += "  ↻"
		}
		if e.NightsLeft == 0 {
			line += "  TODAY! 🎉"
		}
		fmt.Fprintln(w, line)
	}
}

func nightsWord(n int) string {
	if n == 1 {
		return "night"
	}
	return "nights"
}
