package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// Collection names.
const (
	Projects          = "projecten"
	Quotes            = "offertes"
	QuoteLines        = "offerte_regels"
	Products          = "producten"
	Norms             = "normuren"
	NormMultipliers   = "norm_multipliers"
	CorrectionFactors = "correctiefactoren"
	Voorcalculaties   = "voorcalculaties"
	PlanningTasks     = "planning_taken"
	TimeEntries       = "urenregistratie"
	MachineUsage      = "machine_gebruik"
	Nacalculaties     = "nacalculaties"
)

func timestamps(c *core.Collection) {
	c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
}

func projectRelation(projects *core.Collection) *core.RelationField {
	return &core.RelationField{
		Name:          "project",
		Required:      true,
		CollectionId:  projects.Id,
		CascadeDelete: true,
		MaxSelect:     1,
	}
}

// Setup creates the collections that do not exist yet. Existing collections
// are left untouched, so it is safe to run on every start.
func Setup(app core.App) error {
	projects, err := ensureCollection(app, Projects, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "naam", Required: true})
		c.Fields.Add(&core.TextField{Name: "klant"})
		c.Fields.Add(&core.TextField{Name: "eigenaar"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"actief", "afgerond", "gearchiveerd"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "planning_uren"})
		c.Fields.Add(&core.NumberField{Name: "planning_dagen"})
		timestamps(c)
	})
	if err != nil {
		return err
	}

	quotes, err := ensureCollection(app, Quotes, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "nummer"})
		c.Fields.Add(&core.TextField{Name: "titel", Required: true})
		c.Fields.Add(&core.TextField{Name: "klant"})
		c.Fields.Add(&core.TextField{Name: "eigenaar"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Values:    []string{"concept", "berekend", "verstuurd", "geaccepteerd"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "scopes"})
		c.Fields.Add(&core.JSONField{Name: "instellingen"})
		c.Fields.Add(&core.JSONField{Name: "totalen"})
		c.Fields.Add(&core.JSONField{Name: "ontbrekende_producten"})
		c.Fields.Add(&core.JSONField{Name: "ontbrekende_normen"})
		timestamps(c)
		c.AddIndex("idx_offertes_nummer", true, "nummer", "nummer != ''")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, QuoteLines, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "offerte",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "regel_id"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.TextField{Name: "scope"})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"materiaal", "arbeid", "machine"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "omschrijving", Required: true})
		c.Fields.Add(&core.TextField{Name: "eenheid"})
		c.Fields.Add(&core.NumberField{Name: "hoeveelheid"})
		c.Fields.Add(&core.NumberField{Name: "prijs_per_eenheid"})
		c.Fields.Add(&core.NumberField{Name: "totaal"})
		c.Fields.Add(&core.JSONField{Name: "marge_override"})
		c.Fields.Add(&core.BoolField{Name: "handmatig"})
		c.Fields.Add(&core.TextField{Name: "product"})
		c.AddIndex("idx_offerte_regels_offerte", false, "offerte, handmatig", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, Products, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "eigenaar"})
		c.Fields.Add(&core.TextField{Name: "naam", Required: true})
		c.Fields.Add(&core.TextField{Name: "categorie", Required: true})
		c.Fields.Add(&core.TextField{Name: "eenheid", Required: true})
		c.Fields.Add(&core.NumberField{Name: "inkoopprijs"})
		c.Fields.Add(&core.NumberField{Name: "verkoopprijs"})
		c.Fields.Add(&core.NumberField{Name: "verlies_percentage"})
		c.Fields.Add(&core.BoolField{Name: "actief"})
		c.AddIndex("idx_producten_lookup", false, "eigenaar, categorie, naam", "")
		timestamps(c)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, Norms, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "scope", Required: true})
		c.Fields.Add(&core.TextField{Name: "activiteit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "uren_per_eenheid"})
		c.Fields.Add(&core.TextField{Name: "eenheid"})
		c.Fields.Add(&core.TextField{Name: "omschrijving"})
		c.AddIndex("idx_normuren_scope_activiteit", true, "scope, activiteit", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, NormMultipliers, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "scope", Required: true})
		c.Fields.Add(&core.TextField{Name: "dimensie", Required: true})
		c.Fields.Add(&core.TextField{Name: "niveau", Required: true})
		c.Fields.Add(&core.NumberField{Name: "factor", Required: true})
		c.AddIndex("idx_norm_multipliers_key", true, "scope, dimensie, niveau", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, CorrectionFactors, func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "categorie",
			Required:  true,
			Values:    []string{"bereikbaarheid", "achterstand", "complexiteit", "intensiteit", "snijwerk"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "niveau", Required: true})
		c.Fields.Add(&core.NumberField{Name: "factor", Required: true})
		c.Fields.Add(&core.TextField{Name: "omschrijving"})
		c.AddIndex("idx_correctiefactoren_key", true, "categorie, niveau", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, Voorcalculaties, func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.RelationField{Name: "offerte", CollectionId: quotes.Id, MaxSelect: 1})
		c.Fields.Add(&core.NumberField{Name: "totaal_normuren"})
		c.Fields.Add(&core.NumberField{Name: "geschatte_dagen"})
		c.Fields.Add(&core.JSONField{Name: "normuren_per_scope"})
		c.Fields.Add(&core.NumberField{Name: "team_grootte"})
		c.Fields.Add(&core.NumberField{Name: "effectieve_uren_per_dag"})
		c.Fields.Add(&core.NumberField{Name: "geplande_machinekosten"})
		c.AddIndex("idx_voorcalculaties_project", true, "project", "")
		timestamps(c)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, PlanningTasks, func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.TextField{Name: "taak_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "scope"})
		c.Fields.Add(&core.TextField{Name: "naam", Required: true})
		c.Fields.Add(&core.NumberField{Name: "volgorde"})
		c.Fields.Add(&core.NumberField{Name: "uren"})
		c.Fields.Add(&core.NumberField{Name: "dagen"})
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, TimeEntries, func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.DateField{Name: "datum", Required: true})
		c.Fields.Add(&core.TextField{Name: "medewerker", Required: true})
		c.Fields.Add(&core.NumberField{Name: "uren", Required: true})
		c.Fields.Add(&core.TextField{Name: "scope"})
		c.Fields.Add(&core.TextField{Name: "notitie"})
		c.AddIndex("idx_urenregistratie_project", false, "project, datum", "")
		timestamps(c)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, MachineUsage, func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.DateField{Name: "datum", Required: true})
		c.Fields.Add(&core.TextField{Name: "machine", Required: true})
		c.Fields.Add(&core.NumberField{Name: "uren"})
		c.Fields.Add(&core.NumberField{Name: "kosten"})
		c.Fields.Add(&core.TextField{Name: "notitie"})
		c.AddIndex("idx_machine_gebruik_project", false, "project, datum", "")
		timestamps(c)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, Nacalculaties, func(c *core.Collection) {
		c.Fields.Add(projectRelation(projects))
		c.Fields.Add(&core.JSONField{Name: "rapport"})
		c.Fields.Add(&core.TextField{Name: "status"})
		c.Fields.Add(&core.NumberField{Name: "afwijking_percentage"})
		timestamps(c)
	})
	return err
}

// ensureCollection returns the named collection, creating it with the
// fields added by addFields when it does not exist yet.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}
	return collection, nil
}
