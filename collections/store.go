package collections

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"offertetool/reference"
	"offertetool/scopes"
	"offertetool/services"
)

// Store implements the service stores on top of the pocketbase collections.
type Store struct {
	app core.App
}

var (
	_ services.ReferenceStore  = (*Store)(nil)
	_ services.QuoteStore      = (*Store)(nil)
	_ services.ProjectStore    = (*Store)(nil)
	_ services.PriceBookWriter = (*Store)(nil)
)

func NewStore(app core.App) *Store {
	return &Store{app: app}
}

// unmarshalJSON decodes a JSON field, leaving dst untouched when the field
// was never set.
func unmarshalJSON(r *core.Record, key string, dst any) error {
	switch strings.TrimSpace(r.GetString(key)) {
	case "", "null":
		return nil
	}
	return r.UnmarshalJSONField(key, dst)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return services.ErrNotFound
	}
	return err
}

func (s *Store) NormTable() (*reference.NormTable, error) {
	var normRecs, multRecs []*core.Record
	if err := s.app.RecordQuery(Norms).OrderBy("scope ASC", "activiteit ASC").All(&normRecs); err != nil {
		return nil, fmt.Errorf("query norms: %w", err)
	}
	if err := s.app.RecordQuery(NormMultipliers).OrderBy("scope ASC", "dimensie ASC", "niveau ASC").All(&multRecs); err != nil {
		return nil, fmt.Errorf("query norm multipliers: %w", err)
	}

	norms := make([]reference.Normuur, 0, len(normRecs))
	for _, r := range normRecs {
		norms = append(norms, reference.Normuur{
			Scope:        r.GetString("scope"),
			Activity:     r.GetString("activiteit"),
			HoursPerUnit: r.GetFloat("uren_per_eenheid"),
			Unit:         r.GetString("eenheid"),
			Description:  r.GetString("omschrijving"),
		})
	}
	multipliers := make([]reference.Multiplier, 0, len(multRecs))
	for _, r := range multRecs {
		multipliers = append(multipliers, reference.Multiplier{
			Scope:     r.GetString("scope"),
			Dimension: r.GetString("dimensie"),
			Level:     r.GetString("niveau"),
			Factor:    r.GetFloat("factor"),
		})
	}
	return reference.NewNormTable(norms, multipliers), nil
}

func (s *Store) CorrectionTable() (*reference.CorrectionTable, error) {
	var recs []*core.Record
	if err := s.app.RecordQuery(CorrectionFactors).OrderBy("categorie ASC", "niveau ASC").All(&recs); err != nil {
		return nil, fmt.Errorf("query correction factors: %w", err)
	}
	rows := make([]reference.CorrectionFactor, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, reference.CorrectionFactor{
			Category:    reference.Category(r.GetString("categorie")),
			Level:       reference.Level(r.GetString("niveau")),
			Factor:      r.GetFloat("factor"),
			Description: r.GetString("omschrijving"),
		})
	}
	return reference.NewCorrectionTable(rows), nil
}

func (s *Store) PriceBook(owner string) (reference.PriceBook, error) {
	owners := dbx.HashExp{"eigenaar": ""}
	if owner != "" {
		owners = dbx.HashExp{"eigenaar": []any{"", owner}}
	}
	var recs []*core.Record
	err := s.app.RecordQuery(Products).
		AndWhere(owners).
		AndWhere(dbx.HashExp{"actief": true}).
		All(&recs)
	if err != nil {
		return reference.PriceBook{}, fmt.Errorf("query products: %w", err)
	}
	products := make([]reference.Product, 0, len(recs))
	for _, r := range recs {
		products = append(products, productFromRecord(r))
	}
	return reference.NewPriceBook(products), nil
}

func productFromRecord(r *core.Record) reference.Product {
	return reference.Product{
		ID:            r.Id,
		Owner:         r.GetString("eigenaar"),
		Name:          r.GetString("naam"),
		Category:      r.GetString("categorie"),
		PurchasePrice: r.GetFloat("inkoopprijs"),
		SalePrice:     r.GetFloat("verkoopprijs"),
		Unit:          r.GetString("eenheid"),
		LossPercent:   r.GetFloat("verlies_percentage"),
		Active:        r.GetBool("actief"),
	}
}

func setProduct(r *core.Record, p reference.Product) {
	r.Set("eigenaar", p.Owner)
	r.Set("naam", p.Name)
	r.Set("categorie", p.Category)
	r.Set("eenheid", p.Unit)
	r.Set("inkoopprijs", p.PurchasePrice)
	r.Set("verkoopprijs", p.SalePrice)
	r.Set("verlies_percentage", p.LossPercent)
	r.Set("actief", p.Active)
}

// UpsertProducts writes all products in one transaction.
func (s *Store) UpsertProducts(owner string, products []reference.Product) (int, error) {
	col, err := s.app.FindCollectionByNameOrId(Products)
	if err != nil {
		return 0, err
	}
	err = s.app.RunInTransaction(func(txApp core.App) error {
		for _, p := range products {
			p.Owner = owner
			rec, err := txApp.FindFirstRecordByFilter(Products,
				"eigenaar = {:owner} && categorie = {:category} && naam = {:name}",
				dbx.Params{"owner": owner, "category": p.Category, "name": p.Name},
			)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					return err
				}
				rec = core.NewRecord(col)
			}
			setProduct(rec, p)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("product %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}

// ── Quotes ──────────────────────────────────────────────────────────────

func (s *Store) LoadQuote(id string) (services.QuoteDraft, error) {
	rec, err := s.app.FindRecordById(Quotes, id)
	if err != nil {
		return services.QuoteDraft{}, notFound(err)
	}
	d := services.QuoteDraft{
		ID:        rec.Id,
		Number:    rec.GetString("nummer"),
		ProjectID: rec.GetString("project"),
		Owner:     rec.GetString("eigenaar"),
		Title:     rec.GetString("titel"),
		Customer:  rec.GetString("klant"),
	}
	if err := unmarshalJSON(rec, "scopes", &d.Scopes); err != nil {
		return services.QuoteDraft{}, fmt.Errorf("quote %s scopes: %w", id, err)
	}
	if err := unmarshalJSON(rec, "instellingen", &d.Settings); err != nil {
		return services.QuoteDraft{}, fmt.Errorf("quote %s settings: %w", id, err)
	}

	manual, err := s.app.FindRecordsByFilter(QuoteLines,
		"offerte = {:id} && handmatig = true", "sort_order,id", 0, 0,
		dbx.Params{"id": id},
	)
	if err != nil {
		return services.QuoteDraft{}, fmt.Errorf("quote %s manual lines: %w", id, err)
	}
	for _, r := range manual {
		l := lineFromRecord(r)
		l.ID = r.Id
		d.ManualLines = append(d.ManualLines, l)
	}
	return d, nil
}

func (s *Store) QuoteIDs() ([]string, error) {
	var recs []*core.Record
	if err := s.app.RecordQuery(Quotes).OrderBy("id ASC").All(&recs); err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Id
	}
	return ids, nil
}

func lineFromRecord(r *core.Record) services.QuoteLine {
	l := services.QuoteLine{
		ID:          r.GetString("regel_id"),
		Scope:       scopes.Key(r.GetString("scope")),
		Type:        services.LineType(r.GetString("type")),
		Description: r.GetString("omschrijving"),
		Unit:        r.GetString("eenheid"),
		Quantity:    r.GetFloat("hoeveelheid"),
		UnitPrice:   r.GetFloat("prijs_per_eenheid"),
		Total:       r.GetFloat("totaal"),
		Manual:      r.GetBool("handmatig"),
		ProductID:   r.GetString("product"),
	}
	var override *float64
	if err := unmarshalJSON(r, "marge_override", &override); err == nil {
		l.MarginOverride = override
	}
	return l
}

func setLine(r *core.Record, l services.QuoteLine, order int) {
	r.Set("regel_id", l.ID)
	r.Set("sort_order", order)
	r.Set("scope", string(l.Scope))
	r.Set("type", string(l.Type))
	r.Set("omschrijving", l.Description)
	r.Set("eenheid", l.Unit)
	r.Set("hoeveelheid", l.Quantity)
	r.Set("prijs_per_eenheid", services.RoundMoney(l.UnitPrice))
	r.Set("totaal", services.RoundMoney(l.Total))
	r.Set("marge_override", l.MarginOverride)
	r.Set("handmatig", l.Manual)
	r.Set("product", l.ProductID)
}

// SaveQuoteResult replaces the generated lines, updates manual line totals
// and writes totals and voorcalculatie in one transaction.
func (s *Store) SaveQuoteResult(draft services.QuoteDraft, res services.QuoteResult) error {
	linesCol, err := s.app.FindCollectionByNameOrId(QuoteLines)
	if err != nil {
		return err
	}
	return s.app.RunInTransaction(func(txApp core.App) error {
		quote, err := txApp.FindRecordById(Quotes, draft.ID)
		if err != nil {
			return notFound(err)
		}

		generated, err := txApp.FindAllRecords(QuoteLines, dbx.HashExp{"offerte": draft.ID, "handmatig": false})
		if err != nil {
			return fmt.Errorf("query generated lines: %w", err)
		}
		for _, r := range generated {
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete line %s: %w", r.Id, err)
			}
		}

		for i, l := range res.Quote.Lines {
			var rec *core.Record
			if l.Manual {
				rec, err = txApp.FindRecordById(QuoteLines, l.ID)
				if err != nil {
					return fmt.Errorf("manual line %s: %w", l.ID, notFound(err))
				}
				l.ID = rec.GetString("regel_id")
			} else {
				rec = core.NewRecord(linesCol)
				rec.Set("offerte", draft.ID)
			}
			setLine(rec, l, i+1)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save line %q: %w", l.Description, err)
			}
		}

		if quote.GetString("nummer") == "" {
			number, err := nextQuoteNumber(txApp, time.Now())
			if err != nil {
				return err
			}
			quote.Set("nummer", number)
		}
		quote.Set("totalen", res.Quote.Totals.Rounded())
		quote.Set("ontbrekende_producten", res.Quote.MissingProducts)
		quote.Set("ontbrekende_normen", res.MissingNorms())
		quote.Set("status", "berekend")
		if err := txApp.Save(quote); err != nil {
			return fmt.Errorf("save quote totals: %w", err)
		}

		if draft.ProjectID == "" {
			return nil
		}
		return saveVoorcalculatie(txApp, draft.ProjectID, draft.ID, res.Voorcalculatie)
	})
}

// nextQuoteNumber returns one past the highest number of the year, so
// numbers freed by deleted quotes are never handed out again.
func nextQuoteNumber(app core.App, now time.Time) (string, error) {
	prefix := services.QuoteNumberPrefix(now)
	numbered, err := app.FindRecordsByFilter(Quotes, "nummer ~ {:prefix}", "", 0, 0,
		dbx.Params{"prefix": prefix + "%"},
	)
	if err != nil {
		return "", fmt.Errorf("find quote numbers: %w", err)
	}
	highest := 0
	for _, rec := range numbered {
		if seq, ok := services.QuoteSequence(now, rec.GetString("nummer")); ok && seq > highest {
			highest = seq
		}
	}
	return services.FormatQuoteNumber(now, highest+1), nil
}

func saveVoorcalculatie(app core.App, projectID, quoteID string, v services.Voorcalculatie) error {
	rec, err := app.FindFirstRecordByFilter(Voorcalculaties, "project = {:project}", dbx.Params{"project": projectID})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		col, err := app.FindCollectionByNameOrId(Voorcalculaties)
		if err != nil {
			return err
		}
		rec = core.NewRecord(col)
		rec.Set("project", projectID)
	}
	rec.Set("offerte", quoteID)
	rec.Set("totaal_normuren", v.TotalNormHours)
	rec.Set("geschatte_dagen", v.EstimatedDays)
	rec.Set("normuren_per_scope", v.HoursPerScope)
	rec.Set("team_grootte", v.TeamSize)
	rec.Set("effectieve_uren_per_dag", v.EffectiveHoursPerDay)
	rec.Set("geplande_machinekosten", v.PlannedEquipmentCost)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save voorcalculatie: %w", err)
	}
	return nil
}

// ── Projects ────────────────────────────────────────────────────────────

func (s *Store) LoadVoorcalculatie(projectID string) (services.Voorcalculatie, error) {
	rec, err := s.app.FindFirstRecordByFilter(Voorcalculaties, "project = {:project}", dbx.Params{"project": projectID})
	if err != nil {
		return services.Voorcalculatie{}, notFound(err)
	}
	v := services.Voorcalculatie{
		TotalNormHours:       rec.GetFloat("totaal_normuren"),
		EstimatedDays:        rec.GetFloat("geschatte_dagen"),
		TeamSize:             rec.GetInt("team_grootte"),
		EffectiveHoursPerDay: rec.GetFloat("effectieve_uren_per_dag"),
		PlannedEquipmentCost: rec.GetFloat("geplande_machinekosten"),
	}
	if err := unmarshalJSON(rec, "normuren_per_scope", &v.HoursPerScope); err != nil {
		return services.Voorcalculatie{}, fmt.Errorf("voorcalculatie hours per scope: %w", err)
	}
	return v, nil
}

func (s *Store) logRecords(collection, projectID string) ([]*core.Record, error) {
	var recs []*core.Record
	err := s.app.RecordQuery(collection).
		AndWhere(dbx.HashExp{"project": projectID}).
		OrderBy("datum ASC", "id ASC").
		All(&recs)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return recs, nil
}

func (s *Store) TimeEntries(projectID string) ([]services.TimeEntry, error) {
	recs, err := s.logRecords(TimeEntries, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]services.TimeEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, services.TimeEntry{
			ID:     r.Id,
			Date:   r.GetDateTime("datum").Time(),
			Worker: r.GetString("medewerker"),
			Hours:  r.GetFloat("uren"),
			Scope:  scopes.Key(r.GetString("scope")),
			Note:   r.GetString("notitie"),
		})
	}
	return out, nil
}

func (s *Store) MachineUsage(projectID string) ([]services.MachineUsage, error) {
	recs, err := s.logRecords(MachineUsage, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]services.MachineUsage, 0, len(recs))
	for _, r := range recs {
		out = append(out, services.MachineUsage{
			ID:      r.Id,
			Date:    r.GetDateTime("datum").Time(),
			Machine: r.GetString("machine"),
			Hours:   r.GetFloat("uren"),
			Cost:    r.GetFloat("kosten"),
			Note:    r.GetString("notitie"),
		})
	}
	return out, nil
}

func (s *Store) newLogRecord(collection, projectID string, date time.Time) (*core.Record, error) {
	if _, err := s.app.FindRecordById(Projects, projectID); err != nil {
		return nil, notFound(err)
	}
	col, err := s.app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, err
	}
	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("datum", date)
	return rec, nil
}

func (s *Store) AppendTimeEntry(projectID string, e services.TimeEntry) (services.TimeEntry, error) {
	rec, err := s.newLogRecord(TimeEntries, projectID, e.Date)
	if err != nil {
		return services.TimeEntry{}, err
	}
	rec.Set("medewerker", e.Worker)
	rec.Set("uren", e.Hours)
	rec.Set("scope", string(e.Scope))
	rec.Set("notitie", e.Note)
	if err := s.app.Save(rec); err != nil {
		return services.TimeEntry{}, err
	}
	e.ID = rec.Id
	return e, nil
}

func (s *Store) AppendMachineUsage(projectID string, u services.MachineUsage) (services.MachineUsage, error) {
	rec, err := s.newLogRecord(MachineUsage, projectID, u.Date)
	if err != nil {
		return services.MachineUsage{}, err
	}
	rec.Set("machine", u.Machine)
	rec.Set("uren", u.Hours)
	rec.Set("kosten", u.Cost)
	rec.Set("notitie", u.Note)
	if err := s.app.Save(rec); err != nil {
		return services.MachineUsage{}, err
	}
	u.ID = rec.Id
	return u, nil
}

func (s *Store) LoadPlanning(projectID string) (services.Planning, error) {
	project, err := s.app.FindRecordById(Projects, projectID)
	if err != nil {
		return services.Planning{}, notFound(err)
	}
	recs, err := s.app.FindAllRecords(PlanningTasks, dbx.HashExp{"project": projectID})
	if err != nil {
		return services.Planning{}, fmt.Errorf("query planning tasks: %w", err)
	}
	if len(recs) == 0 {
		return services.Planning{}, services.ErrNotFound
	}
	p := services.Planning{
		TotalHours: project.GetFloat("planning_uren"),
		TotalDays:  project.GetFloat("planning_dagen"),
	}
	for _, r := range recs {
		p.Tasks = append(p.Tasks, services.Task{
			ID:    r.GetString("taak_id"),
			Scope: scopes.Key(r.GetString("scope")),
			Name:  r.GetString("naam"),
			Order: r.GetInt("volgorde"),
			Hours: r.GetFloat("uren"),
			Days:  r.GetFloat("dagen"),
		})
	}
	services.SortTasks(p.Tasks)
	return p, nil
}

// SavePlanning replaces the project's tasks.
func (s *Store) SavePlanning(projectID string, p services.Planning) error {
	col, err := s.app.FindCollectionByNameOrId(PlanningTasks)
	if err != nil {
		return err
	}
	return s.app.RunInTransaction(func(txApp core.App) error {
		project, err := txApp.FindRecordById(Projects, projectID)
		if err != nil {
			return notFound(err)
		}
		existing, err := txApp.FindAllRecords(PlanningTasks, dbx.HashExp{"project": projectID})
		if err != nil {
			return err
		}
		for _, r := range existing {
			if err := txApp.Delete(r); err != nil {
				return err
			}
		}

		tasks := make([]services.Task, len(p.Tasks))
		copy(tasks, p.Tasks)
		services.SortTasks(tasks)
		for _, t := range tasks {
			r := core.NewRecord(col)
			r.Set("project", projectID)
			r.Set("taak_id", t.ID)
			r.Set("scope", string(t.Scope))
			r.Set("naam", t.Name)
			r.Set("volgorde", t.Order)
			r.Set("uren", t.Hours)
			r.Set("dagen", t.Days)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save task %q: %w", t.Name, err)
			}
		}

		project.Set("planning_uren", p.TotalHours)
		project.Set("planning_dagen", p.TotalDays)
		return txApp.Save(project)
	})
}

// SaveNacalculatie stores a snapshot; earlier snapshots are kept.
func (s *Store) SaveNacalculatie(projectID string, r services.NacalculatieReport) error {
	col, err := s.app.FindCollectionByNameOrId(Nacalculaties)
	if err != nil {
		return err
	}
	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("rapport", r)
	rec.Set("status", string(r.Status))
	rec.Set("afwijking_percentage", r.DeviationPercent)
	return s.app.Save(rec)
}
