package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/collections"
	"offertetool/config"
	"offertetool/handlers"
	applog "offertetool/logger"
	"offertetool/services"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	logger := applog.Must(applog.New(cfg.LogLevel))
	defer logger.Sync() //nolint:errcheck

	app := pocketbase.New()

	store := collections.NewStore(app)
	quotes := services.NewQuoteService(store, store, cfg.Calculation, applog.Named(logger, "offerte"))
	projects := services.NewProjectService(store, applog.Named(logger, "project"))
	books := services.NewPriceBookService(store, applog.Named(logger, "prijsboek"))
	refs := services.NewReferenceService(store, applog.Named(logger, "referentie"))

	registerCommands(app, cfg, quotes, projects, books)

	// Create collections, seed reference data and run migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := prepare(app, cfg, logger); err != nil {
			return err
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		apiLog := applog.Named(logger, "api")

		// ── Quotes ───────────────────────────────────────────────
		se.Router.POST("/api/tuin/offertes/{id}/berekenen", handlers.HandleQuoteCalculate(quotes, apiLog))
		se.Router.GET("/api/tuin/offertes/{id}/export", handlers.HandleQuoteExportExcel(app, quotes, apiLog))

		// ── Project-scoped routes ───────────────────────────────
		project := se.Router.Group("/api/tuin/projecten/{id}")
		project.BindFunc(handlers.ProjectMiddleware(app))
		project.POST("/planning", handlers.HandlePlanningGenerate(projects, apiLog))
		project.POST("/planning/volgorde", handlers.HandlePlanningReorder(projects, apiLog))
		project.GET("/nacalculatie", handlers.HandleNacalculatie(projects, apiLog))
		project.GET("/nacalculatie/export", handlers.HandleNacalculatieExportExcel(projects, apiLog))
		project.POST("/uren", handlers.HandleTimeEntryCreate(projects, apiLog))
		project.POST("/machines", handlers.HandleMachineUsageCreate(projects, apiLog))

		// ── Price book and reference data ───────────────────────
		se.Router.GET("/api/tuin/prijsboek", handlers.HandlePriceBookSearch(refs, cfg.DefaultOwner, apiLog))
		se.Router.GET("/api/tuin/referentie", handlers.HandleReferenceData(refs, apiLog))
		se.Router.POST("/api/tuin/prijsboek/import", handlers.HandlePriceBookImport(books, cfg.DefaultOwner, apiLog))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal("app stopped", zap.Error(err))
	}
}

// prepare brings the database to the current schema. Seed and migration
// failures are logged and do not stop the app.
func prepare(app core.App, cfg *config.Config, logger *zap.Logger) error {
	setupLog := applog.Named(logger, "setup")
	if err := collections.Setup(app); err != nil {
		return err
	}
	collections.RegisterAppendOnlyGuards(app)

	if err := collections.Seed(app, setupLog); err != nil {
		setupLog.Warn("seed data failed", zap.Error(err))
	}
	if err := collections.MigrateOrphanQuotesToProjects(app, setupLog); err != nil {
		setupLog.Warn("project migration failed", zap.Error(err))
	}
	if err := collections.MigrateDefaultQuoteSettings(app, cfg.Calculation, setupLog); err != nil {
		setupLog.Warn("quote settings migration failed", zap.Error(err))
	}
	return nil
}
