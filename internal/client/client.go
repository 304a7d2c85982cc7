// Package client talks to a nightsleft server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/nightsleft/internal/date"
	"github.com/dukerupert/nightsleft/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range events {
		normalize(&events[i])
	}
	return events, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodGet, eventPath(id), nil, &e); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	normalize(&e)
	return &e, nil
}

// Create sends e's name, date, recurrence, emoji and color. The server
// assigns the id and timestamps.
func (c *Client) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	body := map[string]any{
		"title":        e.Name,
		"date":         e.Date,
		"isRepeatable": e.Recurring,
	}
	if e.Emoji != "" {
		body["icon"] = e.Emoji
	}
	if e.Color != "" {
		body["color"] = e.Color
	}

	var created model.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", body, &created); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	normalize(&created)
	return &created, nil
}

// Update sends only the fields set in p.
func (c *Client) Update(ctx context.Context, id int64, p model.EventPatch) (*model.Event, error) {
	body := map[string]any{}
	if p.Name != nil {
		body["title"] = *p.Name
	}
	if p.Date != nil {
		body["date"] = *p.Date
	}
	if p.Recurring != nil {
		body["isRepeatable"] = *p.Recurring
	}
	if p.Emoji != nil {
		body["icon"] = *p.Emoji
	}
	if p.Color != nil {
		body["color"] = *p.Color
	}

	var updated model.Event
	if err := c.do(ctx, http.MethodPatch, eventPath(id), body, &updated); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	normalize(&updated)
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, eventPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Countdown fetches the server's board. A negative years or a zero today
// leaves the choice to the server.
func (c *Client) Countdown(ctx context.Context, years int, today date.Date) (*model.Countdown, error) {
	q := url.Values{}
	if years >= 0 {
		q.Set("years", strconv.Itoa(years))
	}
	if !today.IsZero() {
		q.Set("today", today.String())
	}
	path := "/api/countdown"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var cd model.Countdown
	if err := c.do(ctx, http.MethodGet, path, nil, &cd); err != nil {
		return nil, fmt.Errorf("get countdown: %w", err)
	}
	for i := range cd.Entries {
		normalize(&cd.Entries[i].Event)
	}
	return &cd, nil
}

func (c *Client) Horizon(ctx context.Context) (int, error) {
	var resp struct {
		HorizonYears int `json:"horizonYears"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/horizon", nil, &resp); err != nil {
		return 0, fmt.Errorf("get horizon: %w", err)
	}
	return resp.HorizonYears, nil
}

// ExtendHorizon grows the server horizon by one step and returns it.
func (c *Client) ExtendHorizon(ctx context.Context) (int, error) {
	var resp struct {
		HorizonYears int `json:"horizonYears"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/horizon/extend", nil, &resp); err != nil {
		return 0, fmt.Errorf("extend horizon: %w", err)
	}
	return resp.HorizonYears, nil
}

func eventPath(id int64) string {
	return "/api/events/" + strconv.FormatInt(id, 10)
}

// normalize fills display defaults for servers that leave them empty.
func normalize(e *model.Event) {
	if e.Emoji == "" {
		e.Emoji = model.DefaultEmoji
	}
	if e.Color == "" {
		e.Color = model.ColorForID(e.ID)
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError prefers the server's error message. A body that is not JSON
// reads as "Unknown error"; JSON without a message falls back to the status.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		apiErr.Message = "Unknown error"
		return apiErr
	}
	apiErr.Message = payload.Error
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}
	return apiErr
}
