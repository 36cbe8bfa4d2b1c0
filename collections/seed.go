package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/reference"
)

// Seed fills empty reference collections with the default norms,
// multipliers, correction factors and shared price book. Collections that
// already hold rows are left alone.
func Seed(app core.App, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	steps := []struct {
		collection string
		seed       func(core.App, *core.Collection) (int, error)
	}{
		{Norms, seedNorms},
		{NormMultipliers, seedMultipliers},
		{CorrectionFactors, seedCorrectionFactors},
		{Products, seedProducts},
	}
	for _, s := range steps {
		n, err := app.CountRecords(s.collection)
		if err != nil {
			return fmt.Errorf("seed: count %s: %w", s.collection, err)
		}
		if n > 0 {
			continue
		}
		col, err := app.FindCollectionByNameOrId(s.collection)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		var inserted int
		err = app.RunInTransaction(func(txApp core.App) error {
			var serr error
			inserted, serr = s.seed(txApp, col)
			return serr
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.collection, err)
		}
		log.Info("seeded reference data", zap.String("collection", s.collection), zap.Int("rows", inserted))
	}
	return nil
}

func seedNorms(app core.App, col *core.Collection) (int, error) {
	norms := reference.DefaultNorms()
	for _, n := range norms {
		r := core.NewRecord(col)
		r.Set("scope", n.Scope)
		r.Set("activiteit", n.Activity)
		r.Set("uren_per_eenheid", n.HoursPerUnit)
		r.Set("eenheid", n.Unit)
		r.Set("omschrijving", n.Description)
		if err := app.Save(r); err != nil {
			return 0, fmt.Errorf("norm %s/%s: %w", n.Scope, n.Activity, err)
		}
	}
	return len(norms), nil
}

func seedMultipliers(app core.App, col *core.Collection) (int, error) {
	multipliers := reference.DefaultMultipliers()
	for _, m := range multipliers {
		r := core.NewRecord(col)
		r.Set("scope", m.Scope)
		r.Set("dimensie", m.Dimension)
		r.Set("niveau", m.Level)
		r.Set("factor", m.Factor)
		if err := app.Save(r); err != nil {
			return 0, fmt.Errorf("multiplier %s/%s/%s: %w", m.Scope, m.Dimension, m.Level, err)
		}
	}
	return len(multipliers), nil
}

func seedCorrectionFactors(app core.App, col *core.Collection) (int, error) {
	factors := reference.DefaultCorrectionFactors()
	for _, f := range factors {
		r := core.NewRecord(col)
		r.Set("categorie", string(f.Category))
		r.Set("niveau", string(f.Level))
		r.Set("factor", f.Factor)
		r.Set("omschrijving", f.Description)
		if err := app.Save(r); err != nil {
			return 0, fmt.Errorf("correction factor %s/%s: %w", f.Category, f.Level, err)
		}
	}
	return len(factors), nil
}

func seedProducts(app core.App, col *core.Collection) (int, error) {
	products := reference.DefaultProducts()
	for _, p := range products {
		r := core.NewRecord(col)
		setProduct(r, p)
		if err := app.Save(r); err != nil {
			return 0, fmt.Errorf("product %s: %w", p.Name, err)
		}
	}
	return len(products), nil
}
