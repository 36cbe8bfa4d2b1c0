package collections

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/config"
	"offertetool/services"
)

// MigrateOrphanQuotesToProjects creates a project for every quote that has
// none and links them. Safe to call on every startup.
func MigrateOrphanQuotesToProjects(app core.App, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	projectsCol, err := app.FindCollectionByNameOrId(Projects)
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(Quotes, "project = ''", "created", 0, 0)
	if err != nil {
		return fmt.Errorf("migrate: could not query orphan quotes: %w", err)
	}
	if len(orphans) == 0 {
		return nil
	}
	log.Info("creating projects for quotes without one", zap.Int("quotes", len(orphans)))

	for _, quote := range orphans {
		project := core.NewRecord(projectsCol)
		project.Set("naam", quote.GetString("titel"))
		project.Set("klant", quote.GetString("klant"))
		project.Set("eigenaar", quote.GetString("eigenaar"))
		project.Set("status", "actief")

		err := app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(project); err != nil {
				return err
			}
			quote.Set("project", project.Id)
			return txApp.Save(quote)
		})
		if err != nil {
			log.Warn("could not link quote to a new project", zap.String("quote", quote.Id), zap.Error(err))
			continue
		}
		log.Info("quote linked to project", zap.String("quote", quote.Id), zap.String("project", project.Id))
	}
	return nil
}

// MigrateDefaultQuoteSettings writes the configured defaults into quotes
// that carry no settings, so later config changes do not reprice them.
func MigrateDefaultQuoteSettings(app core.App, defaults config.Calculation, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var records []*core.Record
	err := app.RecordQuery(Quotes).
		AndWhere(dbx.Or(
			dbx.HashExp{"instellingen": nil},
			dbx.HashExp{"instellingen": ""},
			dbx.HashExp{"instellingen": "null"},
			dbx.HashExp{"instellingen": "{}"},
		)).
		All(&records)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotes without settings: %w", err)
	}

	for _, r := range records {
		rate, margin, tax := defaults.HourlyRate, defaults.MarginPercent, defaults.TaxPercent
		team, hours := defaults.TeamSize, defaults.EffectiveHoursPerDay
		r.Set("instellingen", services.QuoteSettings{
			HourlyRate:           &rate,
			MarginPercent:        &margin,
			TaxPercent:           &tax,
			TeamSize:             &team,
			EffectiveHoursPerDay: &hours,
		})
		if err := app.Save(r); err != nil {
			return fmt.Errorf("migrate: settings for quote %s: %w", r.Id, err)
		}
	}
	if len(records) > 0 {
		log.Info("default settings written to quotes", zap.Int("quotes", len(records)))
	}
	return nil
}
