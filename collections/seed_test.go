package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"offertetool/collections"
	"offertetool/reference"
	"offertetool/testhelpers"
)

func TestSeed_CreatesReferenceData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	tests := []struct {
		collection string
		want       int
	}{
		{collections.Norms, len(reference.DefaultNorms())},
		{collections.NormMultipliers, len(reference.DefaultMultipliers())},
		{collections.CorrectionFactors, len(reference.DefaultCorrectionFactors())},
		{collections.Products, len(reference.DefaultProducts())},
	}
	for _, tt := range tests {
		n, err := app.CountRecords(tt.collection)
		if err != nil {
			t.Fatalf("count %s: %v", tt.collection, err)
		}
		if int(n) != tt.want {
			t.Errorf("%s: got %d rows, want %d", tt.collection, n, tt.want)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	n, _ := app.CountRecords(collections.Norms)
	if int(n) != len(reference.DefaultNorms()) {
		t.Errorf("expected %d norms after idempotent seed, got %d", len(reference.DefaultNorms()), n)
	}
}

func TestSeed_KeepsEditedCollections(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, _ := app.FindCollectionByNameOrId(collections.CorrectionFactors)
	r := core.NewRecord(col)
	r.Set("categorie", "bereikbaarheid")
	r.Set("niveau", "eigen")
	r.Set("factor", 1.5)
	if err := app.Save(r); err != nil {
		t.Fatalf("save custom factor: %v", err)
	}

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	n, _ := app.CountRecords(collections.CorrectionFactors)
	if n != 1 {
		t.Errorf("expected the edited collection to stay at 1 row, got %d", n)
	}
	norms, _ := app.CountRecords(collections.Norms)
	if norms == 0 {
		t.Error("expected empty collections to be seeded")
	}
}
