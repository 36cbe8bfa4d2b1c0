package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/collections"
	"offertetool/config"
	"offertetool/services"
	"offertetool/testhelpers"
)

const hedgeInput = `{"heggenAanwezig":true,"lengte":10,"hoogte":2.5,"breedte":0.6,"snoei":"beide"}`

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withProject puts a project record into the request context the way
// ProjectMiddleware does.
func withProject(req *http.Request, project *core.Record) *http.Request {
	req.SetPathValue("id", project.Id)
	return req.WithContext(context.WithValue(req.Context(), ProjectKey, project))
}

type testEnv struct {
	app      *pocketbase.PocketBase
	quotes   *services.QuoteService
	projects *services.ProjectService
	books    *services.PriceBookService
	log      *zap.Logger
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	app := testhelpers.NewSeededTestApp(t)
	store := collections.NewStore(app)
	log := zap.NewNop()
	return testEnv{
		app:      app,
		quotes:   services.NewQuoteService(store, store, config.Defaults(), log),
		projects: services.NewProjectService(store, log),
		books:    services.NewPriceBookService(store, log),
		log:      log,
	}
}

// calculatedProject creates a project with a calculated hedge quote.
func (env testEnv) calculatedProject(t *testing.T) (*core.Record, *core.Record) {
	t.Helper()
	project := testhelpers.CreateTestProject(t, env.app, "Heg De Vries")
	quote := testhelpers.CreateTestQuote(t, env.app, project.Id, "Heg snoeien", map[string]string{"heggen": hedgeInput})
	if _, err := env.quotes.Calculate(quote.Id); err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	return project, quote
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
