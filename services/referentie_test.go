package services

import (
	"math"
	"testing"

	"offertetool/reference"
)

func TestSearchProducts(t *testing.T) {
	svc := NewReferenceService(newMemStore(), nil)

	got, err := svc.SearchProducts("", "hout", "schutting")
	if err != nil {
		t.Fatalf("SearchProducts() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SearchProducts(hout, schutting) = %+v, want 2 products", got)
	}

	none, err := svc.SearchProducts("", "hout", "zwembad")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("empty search = %#v, %v; want empty non-nil slice", none, err)
	}

	all, _ := svc.SearchProducts("", "", "")
	if len(all) != len(reference.DefaultProducts()) {
		t.Errorf("unfiltered search = %d, want %d", len(all), len(reference.DefaultProducts()))
	}
}

func TestReferenceOverview(t *testing.T) {
	svc := NewReferenceService(newMemStore(), nil)

	o, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}
	if len(o.Norms) != len(reference.DefaultNorms()) {
		t.Errorf("norms = %d, want %d", len(o.Norms), len(reference.DefaultNorms()))
	}
	if len(o.Corrections) != len(reference.Categories()) {
		t.Fatalf("categories = %d, want %d", len(o.Corrections), len(reference.Categories()))
	}
	for i, cat := range reference.Categories() {
		cc := o.Corrections[i]
		if cc.Category != cat || len(cc.Levels) == 0 {
			t.Errorf("Corrections[%d] = %+v", i, cc)
			continue
		}
		for j, l := range cc.Levels {
			if math.Abs(l.DeltaPercent-(l.Factor-1)*100) > 1e-9 {
				t.Errorf("%s/%s delta = %v for factor %v", cat, l.Level, l.DeltaPercent, l.Factor)
			}
			if j > 0 && l.Factor < cc.Levels[j-1].Factor {
				t.Errorf("%s levels not sorted by factor: %+v", cat, cc.Levels)
			}
		}
	}
}
