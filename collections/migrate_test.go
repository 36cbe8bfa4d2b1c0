package collections_test

import (
	"testing"

	"offertetool/collections"
	"offertetool/config"
	"offertetool/services"
	"offertetool/testhelpers"
)

func TestMigrateOrphanQuotesToProjects(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	orphan := testhelpers.CreateTestQuote(t, app, "", "Voortuin Jansen", nil)
	project := testhelpers.CreateTestProject(t, app, "Bestaand")
	linked := testhelpers.CreateTestQuote(t, app, project.Id, "Achtertuin", nil)

	if err := collections.MigrateOrphanQuotesToProjects(app, nil); err != nil {
		t.Fatalf("MigrateOrphanQuotesToProjects() error: %v", err)
	}

	got, _ := app.FindRecordById(collections.Quotes, orphan.Id)
	projectID := got.GetString("project")
	if projectID == "" {
		t.Fatal("orphan quote still has no project")
	}
	created, err := app.FindRecordById(collections.Projects, projectID)
	if err != nil {
		t.Fatalf("created project not found: %v", err)
	}
	if created.GetString("naam") != "Voortuin Jansen" || created.GetString("status") != "actief" {
		t.Errorf("created project = %q/%q", created.GetString("naam"), created.GetString("status"))
	}

	untouched, _ := app.FindRecordById(collections.Quotes, linked.Id)
	if untouched.GetString("project") != project.Id {
		t.Errorf("linked quote moved to %q", untouched.GetString("project"))
	}

	if err := collections.MigrateOrphanQuotesToProjects(app, nil); err != nil {
		t.Fatalf("second run error: %v", err)
	}
	n, _ := app.CountRecords(collections.Projects)
	if n != 2 {
		t.Errorf("expected 2 projects after idempotent run, got %d", n)
	}
}

func TestMigrateDefaultQuoteSettings(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	bare := testhelpers.CreateTestQuote(t, app, "", "Zonder instellingen", nil)

	custom := testhelpers.CreateTestQuote(t, app, "", "Eigen tarief", nil)
	rate := 52.5
	custom.Set("instellingen", services.QuoteSettings{HourlyRate: &rate})
	if err := app.Save(custom); err != nil {
		t.Fatalf("save custom settings: %v", err)
	}

	defaults := config.Defaults()
	if err := collections.MigrateDefaultQuoteSettings(app, defaults, nil); err != nil {
		t.Fatalf("MigrateDefaultQuoteSettings() error: %v", err)
	}

	var got services.QuoteSettings
	r, _ := app.FindRecordById(collections.Quotes, bare.Id)
	if err := r.UnmarshalJSONField("instellingen", &got); err != nil {
		t.Fatalf("unmarshal settings: %v", err)
	}
	if got.HourlyRate == nil || *got.HourlyRate != defaults.HourlyRate {
		t.Errorf("hourly rate = %v, want %v", got.HourlyRate, defaults.HourlyRate)
	}
	if got.TeamSize == nil || *got.TeamSize != defaults.TeamSize {
		t.Errorf("team size = %v, want %v", got.TeamSize, defaults.TeamSize)
	}

	var kept services.QuoteSettings
	r, _ = app.FindRecordById(collections.Quotes, custom.Id)
	if err := r.UnmarshalJSONField("instellingen", &kept); err != nil {
		t.Fatalf("unmarshal settings: %v", err)
	}
	if kept.HourlyRate == nil || *kept.HourlyRate != 52.5 || kept.TeamSize != nil {
		t.Errorf("custom settings changed: %+v", kept)
	}
}
