package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := RequestLogger(logger, RemoteIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/events/9", nil)
	req.RemoteAddr = "10.1.1.1:5555"
	req.Header.Set("X-Real-IP", "192.0.2.77")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", line["level"])
	}
	if line["path"] != "/api/events/9" {
		t.Errorf("path = %v", line["path"])
	}
	if line["status"] != float64(404) {
		t.Errorf("status = %v, want 404", line["status"])
	}
	if line["bytes"] != float64(7) {
		t.Errorf("bytes = %v, want 7", line["bytes"])
	}
	if line["remote"] != "10.1.1.1" {
		t.Errorf("remote = %v", line["remote"])
	}
}
