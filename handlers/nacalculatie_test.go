package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"offertetool/collections"
	"offertetool/services"
	"offertetool/testhelpers"
)

func TestHandleNacalculatie(t *testing.T) {
	env := newTestEnv(t)
	project, _ := env.calculatedProject(t)
	day := time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)
	testhelpers.CreateTestTimeEntry(t, env.app, project.Id, day, "Jan", 6, "heggen")
	testhelpers.CreateTestTimeEntry(t, env.app, project.Id, day, "Piet", 6, "heggen")

	tests := []struct {
		query     string
		snapshots int
	}{
		{"", 0},
		{"?opslaan=1", 1},
		{"?opslaan=true", 2},
	}
	for _, tt := range tests {
		req := withProject(httptest.NewRequest(http.MethodGet, "/api/tuin/projecten/x/nacalculatie"+tt.query, nil), project)
		rec := httptest.NewRecorder()
		if err := HandleNacalculatie(env.projects, env.log)(newTestRequestEvent(env.app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var r services.NacalculatieReport
		decodeBody(t, rec, &r)
		if r.ActualHours != 12 || r.PlannedHours != 9.75 || r.Status != services.StatusCritical {
			t.Errorf("report = %+v", r)
		}
		n, _ := env.app.CountRecords(collections.Nacalculaties)
		if int(n) != tt.snapshots {
			t.Errorf("query %q: snapshots = %d, want %d", tt.query, n, tt.snapshots)
		}
	}
}

func TestHandleNacalculatieExportExcel(t *testing.T) {
	env := newTestEnv(t)
	project, _ := env.calculatedProject(t)

	req := withProject(httptest.NewRequest(http.MethodGet, "/", nil), project)
	rec := httptest.NewRecorder()
	if err := HandleNacalculatieExportExcel(env.projects, env.log)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Nacalculatie_Heg-De-Vries_") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestProjectMiddleware(t *testing.T) {
	env := newTestEnv(t)
	project := testhelpers.CreateTestProject(t, env.app, "Voortuin")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetPathValue("id", project.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)
	if err := ProjectMiddleware(env.app)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	got := GetProject(e.Request)
	if got == nil || got.Id != project.Id {
		t.Errorf("project in context = %v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetPathValue("id", "doesnotexist123")
	rec = httptest.NewRecorder()
	e = newTestRequestEvent(env.app, req, rec)
	if err := ProjectMiddleware(env.app)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusNotFound || GetProject(e.Request) != nil {
		t.Errorf("status = %d for unknown project", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to hyphens", "Tuin De Vries", "Tuin-De-Vries"},
		{"slashes to hyphens", "voor/achter", "voor-achter"},
		{"backslashes", "voor\\achter", "voor-achter"},
		{"colons", "fase:1", "fase-1"},
		{"no special chars", "simple", "simple"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
