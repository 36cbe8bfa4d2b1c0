// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"offertetool/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app, runs collections.Setup and registers the
// append-only guards. The temporary directory is cleaned up automatically.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}
	collections.RegisterAppendOnlyGuards(app)

	return app
}

// NewSeededTestApp is NewTestApp with the default reference data loaded.
func NewSeededTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}
	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Projects)
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("naam", name)
	record.Set("klant", "Fam. De Vries")
	record.Set("status", "actief")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote with the given scope inputs. projectID may
// be empty. scopeInputs maps scope keys to their JSON input objects.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, projectID, title string, scopeInputs map[string]string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Quotes)
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	raw := make(map[string]json.RawMessage, len(scopeInputs))
	for k, v := range scopeInputs {
		raw[k] = json.RawMessage(v)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("titel", title)
	record.Set("klant", "Fam. De Vries")
	record.Set("status", "concept")
	record.Set("scopes", raw)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestManualLine adds a manual line to a quote.
func CreateTestManualLine(t *testing.T, app *pocketbase.PocketBase, quoteID, description string, qty, unitPrice float64) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(collections.QuoteLines)
	if err != nil {
		t.Fatalf("failed to find quote lines collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("offerte", quoteID)
	record.Set("type", "materiaal")
	record.Set("omschrijving", description)
	record.Set("eenheid", "stuk")
	record.Set("hoeveelheid", qty)
	record.Set("prijs_per_eenheid", unitPrice)
	record.Set("handmatig", true)
	record.Set("sort_order", 99)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test manual line: %v", err)
	}
	return record
}

// CreateTestTimeEntry logs hours on a project. scope may be empty.
func CreateTestTimeEntry(t *testing.T, app *pocketbase.PocketBase, projectID string, date time.Time, worker string, hours float64, scope string) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId(collections.TimeEntries)
	if err != nil {
		t.Fatalf("failed to find time entries collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("datum", date)
	record.Set("medewerker", worker)
	record.Set("uren", hours)
	record.Set("scope", scope)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test time entry: %v", err)
	}
	return record
}
