package reference

import (
	"math"
	"testing"
)

func TestNormTable(t *testing.T) {
	table := DefaultNormTable()

	n, ok := table.Norm("heggen", "snoeien_beide")
	if !ok {
		t.Fatal("expected heggen/snoeien_beide norm")
	}
	if n.HoursPerUnit != 0.5 || n.Unit != "m³" {
		t.Errorf("norm = %+v", n)
	}

	if _, ok := table.Norm("heggen", "stutten"); ok {
		t.Error("unexpected norm for unknown activity")
	}

	f, ok := table.Multiplier("heggen", "hoogte", "boven_2m")
	if !ok || f != 1.3 {
		t.Errorf("multiplier = %v, %v; want 1.3, true", f, ok)
	}
	f, ok = table.Multiplier("heggen", "hoogte", "onbekend")
	if ok || f != 1.0 {
		t.Errorf("missing multiplier = %v, %v; want 1.0, false", f, ok)
	}
}

func TestNormTableNilIsEmpty(t *testing.T) {
	var table *NormTable
	if _, ok := table.Norm("gras", "aanleggen"); ok {
		t.Error("nil table returned a norm")
	}
	if f, _ := table.Multiplier("gras", "type", "zaaien"); f != 1.0 {
		t.Errorf("nil table multiplier = %v, want 1.0", f)
	}
	if got := table.Norms(); got != nil {
		t.Errorf("nil table Norms() = %v", got)
	}
}

func TestNormsSorted(t *testing.T) {
	norms := DefaultNormTable().Norms()
	if len(norms) != len(DefaultNorms()) {
		t.Fatalf("got %d norms, want %d", len(norms), len(DefaultNorms()))
	}
	for i := 1; i < len(norms); i++ {
		a, b := norms[i-1], norms[i]
		if a.Scope > b.Scope || (a.Scope == b.Scope && a.Activity >= b.Activity) {
			t.Fatalf("norms not sorted at %d: %s/%s before %s/%s", i, a.Scope, a.Activity, b.Scope, b.Activity)
		}
	}
}

func TestCorrectionTable(t *testing.T) {
	table := DefaultCorrectionTable()

	tests := []struct {
		category Category
		level    Level
		want     float64
		found    bool
	}{
		{Bereikbaarheid, LevelGoed, 1.0, true},
		{Bereikbaarheid, LevelSlecht, 1.5, true},
		{Achterstand, LevelZwaar, 1.6, true},
		{Intensiteit, LevelLaag, 0.85, true},
		{Snijwerk, LevelHoog, 1.3, true},
		{Snijwerk, LevelZwaar, 1.0, false},
		{Category("weer"), LevelGoed, 1.0, false},
	}
	for _, tt := range tests {
		got, ok := table.Lookup(tt.category, tt.level)
		if got != tt.want || ok != tt.found {
			t.Errorf("Lookup(%s, %s) = %v, %v; want %v, %v", tt.category, tt.level, got, ok, tt.want, tt.found)
		}
	}
}

func TestCorrectionTableLevels(t *testing.T) {
	got := DefaultCorrectionTable().Levels(Intensiteit)
	want := []Level{LevelLaag, LevelNormaal, LevelHoog}
	if len(got) != len(want) {
		t.Fatalf("Levels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Levels[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEffectivePrice(t *testing.T) {
	p := Product{SalePrice: 20, LossPercent: 10}
	if got := p.EffectivePrice(); math.Abs(got-22) > 1e-9 {
		t.Errorf("EffectivePrice() = %v, want 22", got)
	}
	p.LossPercent = 0
	if got := p.EffectivePrice(); got != 20 {
		t.Errorf("EffectivePrice() without loss = %v, want 20", got)
	}
}

func TestPriceBookFind(t *testing.T) {
	book := NewPriceBook([]Product{
		{ID: "a", Category: "bestrating", Name: "Betontegel 30x30", Unit: "m²", SalePrice: 21, Active: true},
		{ID: "b", Category: "bestrating", Name: "Gebakken klinker", Unit: "m²", SalePrice: 35, Active: true},
		{ID: "c", Category: "bestrating", Name: "Oude tegel", Unit: "m²", SalePrice: 1, Active: false},
		{ID: "d", Owner: "hovenier-1", Category: "bestrating", Name: "Betontegel 30x30", Unit: "m²", SalePrice: 19, Active: true},
	})

	if book.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (inactive dropped)", book.Len())
	}

	p, ok := book.Find("bestrating", "betontegel 30X30")
	if !ok || p.ID != "d" {
		t.Errorf("exact match = %+v, %v; want owner product d", p, ok)
	}

	if p, ok := book.Find("bestrating", "Keramische tegel"); ok {
		t.Errorf("unknown name in a stocked category resolved to %+v", p)
	}

	if _, ok := book.Find("bestrating", "Oude tegel"); ok {
		t.Error("inactive product should not be found")
	}
	if _, ok := book.Find("hout", "Vlonderplank"); ok {
		t.Error("unexpected match in empty category")
	}
}

func TestPriceBookSearch(t *testing.T) {
	book := NewPriceBook(DefaultProducts())

	got := book.Search("hout", "schutting")
	if len(got) != 2 {
		t.Fatalf("Search(hout, schutting) = %d products, want 2", len(got))
	}
	for _, p := range got {
		if p.Category != "hout" {
			t.Errorf("unexpected category %q", p.Category)
		}
	}

	if all := book.Search("", ""); len(all) != book.Len() {
		t.Errorf("empty search = %d, want %d", len(all), book.Len())
	}
}

func TestDefaultProductsCoverMachines(t *testing.T) {
	book := NewPriceBook(DefaultProducts())
	for _, name := range []string{"Minigraver", "Trilplaat"} {
		if _, ok := book.Find("machines", name); !ok {
			t.Errorf("default price book misses machine %q", name)
		}
	}
}

func TestProductValidate(t *testing.T) {
	ok := Product{Name: "Boomschors", Category: "afwerking", Unit: "m3", SalePrice: 45, LossPercent: 5}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	bad := []Product{
		{Category: "afwerking", Unit: "m3"},
		{Name: "Boomschors", Unit: "m3"},
		{Name: "Boomschors", Category: "afwerking"},
		{Name: "Boomschors", Category: "afwerking", Unit: "m3", SalePrice: -1},
		{Name: "Boomschors", Category: "afwerking", Unit: "m3", LossPercent: 100},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestDefaultProductsValid(t *testing.T) {
	for _, p := range DefaultProducts() {
		if err := p.Validate(); err != nil {
			t.Errorf("default product %q: %v", p.Name, err)
		}
	}
}
