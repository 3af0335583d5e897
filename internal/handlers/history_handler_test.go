package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"image-service/internal/models"
)

type fakeLister struct {
	entries []models.HistoryEntry
	err     error
	calls   int
}

func (f *fakeLister) ListRecent(limit int) ([]models.HistoryEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newHistoryApp(lister *fakeLister) *fiber.App {
	app := fiber.New()
	app.Get("/history", NewHistoryHandler(lister).ListHistory)
	return app
}

func getHistory(t *testing.T, app *fiber.App) (*http.Response, []map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/history", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return resp, out
}

func TestListHistoryNewestFirst(t *testing.T) {
	now := time.Now()
	lister := &fakeLister{entries: []models.HistoryEntry{
		{Path: "/uploads/2-b.jpg", Label: "vide", CreatedAt: now},
		{Path: "/uploads/1-a.jpg", Label: "pleine", Annotation: "corner bin", Location: "Lyon", CreatedAt: now.Add(-time.Hour)},
	}}
	app := newHistoryApp(lister)

	resp, out := getHistory(t, app)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(out) != 2 {
		t.Fatalf("entries = %d, want 2", len(out))
	}
	if out[0]["path"] != "/uploads/2-b.jpg" || out[1]["path"] != "/uploads/1-a.jpg" {
		t.Errorf("ordering: %v", out)
	}
	if out[1]["annotation"] != "corner bin" || out[1]["location"] != "Lyon" || out[1]["label"] != "pleine" {
		t.Errorf("entry fields: %v", out[1])
	}
	if _, ok := out[0]["created_at"]; !ok {
		t.Error("created_at missing")
	}
	// Internal identifiers are not part of the response shape.
	if _, ok := out[0]["id"]; ok {
		t.Error("id leaked into response")
	}
}

func TestListHistoryIdempotent(t *testing.T) {
	lister := &fakeLister{entries: []models.HistoryEntry{{Path: "/uploads/1-a.jpg"}}}
	app := newHistoryApp(lister)

	_, first := getHistory(t, app)
	_, second := getHistory(t, app)
	if len(first) != len(second) || first[0]["path"] != second[0]["path"] {
		t.Errorf("repeated reads differ: %v vs %v", first, second)
	}
}

func TestListHistoryCap(t *testing.T) {
	entries := make([]models.HistoryEntry, 150)
	for i := range entries {
		entries[i] = models.HistoryEntry{Path: "/uploads/x.jpg"}
	}
	lister := &fakeLister{entries: entries}
	app := newHistoryApp(lister)

	_, out := getHistory(t, app)
	if len(out) != 100 {
		t.Errorf("entries = %d, want the 100 cap", len(out))
	}
}

func TestListHistoryEmpty(t *testing.T) {
	app := newHistoryApp(&fakeLister{})

	resp, out := getHistory(t, app)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if out == nil {
		t.Error("empty history must serialize as [], not null")
	}
}

func TestListHistoryReadFailure(t *testing.T) {
	app := newHistoryApp(&fakeLister{err: errors.New("connection reset")})

	resp, _ := getHistory(t, app)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
