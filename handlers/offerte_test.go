package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"offertetool/collections"
	"offertetool/services"
	"offertetool/testhelpers"
)

func TestHandleQuoteCalculate(t *testing.T) {
	env := newTestEnv(t)
	project := testhelpers.CreateTestProject(t, env.app, "Heg De Vries")
	quote := testhelpers.CreateTestQuote(t, env.app, project.Id, "Heg snoeien", map[string]string{"heggen": hedgeInput})

	req := httptest.NewRequest(http.MethodPost, "/api/tuin/offertes/"+quote.Id+"/berekenen", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := HandleQuoteCalculate(env.quotes, env.log)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res services.QuoteResult
	decodeBody(t, rec, &res)
	if res.QuoteID != quote.Id || res.Voorcalculatie.TotalNormHours != 9.75 {
		t.Errorf("result = %+v", res.Voorcalculatie)
	}

	stored, _ := env.app.FindRecordById(collections.Quotes, quote.Id)
	if stored.GetString("status") != "berekend" {
		t.Errorf("quote status = %q", stored.GetString("status"))
	}
}

func TestHandleQuoteCalculate_NotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tuin/offertes/nope/berekenen", nil)
	req.SetPathValue("id", "doesnotexist123")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := HandleQuoteCalculate(env.quotes, env.log)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleQuoteCalculate_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	quote := testhelpers.CreateTestQuote(t, env.app, "", "Heg",
		map[string]string{"heggen": `{"heggenAanwezig":true,"lengte":-4,"hoogte":2,"breedte":0.6,"snoei":"beide"}`})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := HandleQuoteCalculate(env.quotes, env.log)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	decodeBody(t, rec, &body)
	if body.Scope != "heggen" || body.Details == nil {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleQuoteExportExcel(t *testing.T) {
	env := newTestEnv(t)
	_, quote := env.calculatedProject(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := HandleQuoteExportExcel(env.app, env.quotes, env.log)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Offerte_Heg-snoeien_") {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected xlsx body")
	}
}

func TestHandleQuoteExportExcel_MissingID(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := HandleQuoteExportExcel(env.app, env.quotes, env.log)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
