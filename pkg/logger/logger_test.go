package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := globalLogger
	buf := &bytes.Buffer{}
	globalLogger = New(buf)
	t.Cleanup(func() { globalLogger = prev })
	return buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) LogEntry {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatal("expected at least one log line")
	}
	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("could not decode log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestRequestIDThreading(t *testing.T) {
	t.Run("entries logged during a request carry its id", func(t *testing.T) {
		buf := captureOutput(t)

		app := fiber.New()
		app.Get("/save", func(c *fiber.Ctx) error {
			c.Locals("requestID", "rid-123")
			InfoWithUser(c, "u1", "thing_saved", map[string]interface{}{"k": "v"})
			return nil
		})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/save", nil))
		if err != nil {
			t.Fatalf("app.Test returned error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		entry := lastEntry(t, buf)
		if entry.RequestID != "rid-123" {
			t.Errorf("expected request id rid-123, got %q", entry.RequestID)
		}
		if entry.Action != "thing_saved" || entry.Level != LevelInfo {
			t.Errorf("unexpected entry %+v", entry)
		}
		if entry.UserID == nil || *entry.UserID != "u1" {
			t.Errorf("expected user id u1, got %v", entry.UserID)
		}
	})

	t.Run("nil context logs without a request id", func(t *testing.T) {
		buf := captureOutput(t)

		Info(nil, "server_starting", map[string]interface{}{"port": "3000"})

		entry := lastEntry(t, buf)
		if entry.RequestID != "" {
			t.Errorf("expected empty request id, got %q", entry.RequestID)
		}
		if strings.Contains(buf.String(), "request_id") {
			t.Error("expected request_id to be omitted from the JSON")
		}
	})

	t.Run("error entries record the error text", func(t *testing.T) {
		buf := captureOutput(t)

		Error(nil, "backend_request_failed", errors.New("boom"), nil)

		entry := lastEntry(t, buf)
		if entry.Level != LevelError || entry.Error != "boom" {
			t.Errorf("unexpected entry %+v", entry)
		}
	})
}

func TestGetRequestIDFromContext(t *testing.T) {
	t.Run("nil context yields empty id", func(t *testing.T) {
		if got := GetRequestIDFromContext(nil); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})

	t.Run("context without a stored id yields empty id", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			if got := GetRequestIDFromContext(c); got != "" {
				t.Errorf("expected empty id, got %q", got)
			}
			return nil
		})
		if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
			t.Fatalf("app.Test returned error: %v", err)
		}
	})
}
