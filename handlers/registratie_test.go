package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"offertetool/services"
	"offertetool/testhelpers"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2026-05-04", "2026-05-04T00:00:00Z"} {
		got, err := parseDate(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := parseDate("gisteren"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestHandleTimeEntryCreate(t *testing.T) {
	env := newTestEnv(t)
	project := testhelpers.CreateTestProject(t, env.app, "Achtertuin")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"datum":"2026-05-04","medewerker":"Jan","uren":7.5,"scope":"bestrating"}`, http.StatusCreated},
		{"without scope", `{"datum":"2026-05-04","medewerker":"Piet","uren":4}`, http.StatusCreated},
		{"zero hours", `{"datum":"2026-05-04","medewerker":"Jan","uren":0}`, http.StatusBadRequest},
		{"unknown scope", `{"datum":"2026-05-04","medewerker":"Jan","uren":2,"scope":"zwembad"}`, http.StatusBadRequest},
		{"bad date", `{"datum":"morgen","medewerker":"Jan","uren":2}`, http.StatusBadRequest},
		{"malformed", `{"datum":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withProject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), project)
			rec := httptest.NewRecorder()
			if err := HandleTimeEntryCreate(env.projects, env.log)(newTestRequestEvent(env.app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	entries, _ := env.app.FindAllRecords("urenregistratie")
	if len(entries) != 2 {
		t.Errorf("stored entries = %d, want 2", len(entries))
	}
}

func TestHandleMachineUsageCreate(t *testing.T) {
	env := newTestEnv(t)
	project := testhelpers.CreateTestProject(t, env.app, "Achtertuin")

	body := `{"datum":"2026-05-04","machine":"Minigraver","uren":4,"kosten":220}`
	req := withProject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), project)
	rec := httptest.NewRecorder()
	if err := HandleMachineUsageCreate(env.projects, env.log)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var saved services.MachineUsage
	decodeBody(t, rec, &saved)
	if saved.ID == "" || saved.Cost != 220 {
		t.Errorf("saved = %+v", saved)
	}

	req = withProject(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"datum":"2026-05-04","uren":1}`)), project)
	rec = httptest.NewRecorder()
	if err := HandleMachineUsageCreate(env.projects, env.log)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing machine status = %d, want 400", rec.Code)
	}
}
