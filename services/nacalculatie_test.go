package services

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"offertetool/estimation"
	"offertetool/scopes"
)

func TestGetDeviationStatus(t *testing.T) {
	tests := []struct {
		pct  float64
		want DeviationStatus
	}{
		{0, StatusGood},
		{5, StatusGood},
		{-5, StatusGood},
		{5.1, StatusWarning},
		{15, StatusWarning},
		{-15, StatusWarning},
		{15.1, StatusCritical},
		{-40, StatusCritical},
		{100, StatusCritical},
	}
	for _, tt := range tests {
		if got := GetDeviationStatus(tt.pct); got != tt.want {
			t.Errorf("GetDeviationStatus(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestDeviationPercent(t *testing.T) {
	tests := []struct {
		actual, planned, want float64
	}{
		{46, 40, 15},
		{34, 40, -15},
		{10, 3, 233.3},
		{12, 0, 100},
		{0, 0, 0},
		{0, 8, -100},
		{40.25, 40, 0.6},
		// ties round away from zero on both sides
		{200.1, 200, 0.1},
		{199.9, 200, -0.1},
		{41.85, 36, 16.3},
		{30.15, 36, -16.3},
	}
	for _, tt := range tests {
		if got := deviationPercent(tt.actual, tt.planned); got != tt.want {
			t.Errorf("deviationPercent(%v, %v) = %v, want %v", tt.actual, tt.planned, got, tt.want)
		}
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.May, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateNacalculatieBoundary(t *testing.T) {
	plan := Voorcalculatie{TotalNormHours: 40, EstimatedDays: 3.33, HoursPerScope: map[scopes.Key]float64{scopes.Bestrating: 40}}
	entries := []TimeEntry{
		{Date: day(4), Worker: "Jan", Hours: 8, Scope: scopes.Bestrating},
		{Date: day(4), Worker: "Piet", Hours: 8, Scope: scopes.Bestrating},
		{Date: day(5), Worker: "Jan", Hours: 8, Scope: scopes.Bestrating},
		{Date: day(5), Worker: "Piet", Hours: 8, Scope: scopes.Bestrating},
		{Date: day(6), Worker: "Jan", Hours: 6, Scope: scopes.Bestrating},
		{Date: day(6), Worker: "Kees", Hours: 8},
	}

	r := CalculateNacalculatie(plan, entries, nil)

	if r.ActualHours != 46 || r.DeviationHours != 6 {
		t.Errorf("actual = %v, deviation = %v; want 46, 6", r.ActualHours, r.DeviationHours)
	}
	if r.DeviationPercent != 15 || r.Status != StatusWarning {
		t.Errorf("percent = %v, status = %s; want 15, warning", r.DeviationPercent, r.Status)
	}
	if r.ActualDays != 3 || r.Workers != 3 {
		t.Errorf("days = %d, workers = %d; want 3, 3", r.ActualDays, r.Workers)
	}
	if r.UnscopedHours != 8 || r.ActualHoursPerScope[scopes.Bestrating] != 38 {
		t.Errorf("unscoped = %v, per scope = %v", r.UnscopedHours, r.ActualHoursPerScope)
	}
	if len(r.Scopes) != 1 || r.Scopes[0].DeviationPercent != -5 || r.Scopes[0].Status != StatusGood {
		t.Errorf("scopes = %+v", r.Scopes)
	}
	if len(r.Insights) == 0 || r.Insights[0].Type != InsightWarning {
		t.Errorf("first insight = %+v, want warning on total", r.Insights)
	}
}

func TestCalculateNacalculatieUnplannedScope(t *testing.T) {
	plan := Voorcalculatie{
		TotalNormHours: 20,
		HoursPerScope:  map[scopes.Key]float64{scopes.Gras: 12, scopes.Heggen: 8},
	}
	entries := []TimeEntry{
		{Date: day(1), Worker: "Jan", Hours: 12, Scope: scopes.Gras},
		{Date: day(1), Worker: "Jan", Hours: 6, Scope: scopes.Heggen},
		{Date: day(2), Worker: "Jan", Hours: 3, Scope: scopes.Bomen},
	}

	r := CalculateNacalculatie(plan, entries, nil)

	if len(r.Scopes) != 3 {
		t.Fatalf("scopes = %+v", r.Scopes)
	}
	wantOrder := []scopes.Key{scopes.Bomen, scopes.Heggen, scopes.Gras}
	for i, k := range wantOrder {
		if r.Scopes[i].Scope != k {
			t.Errorf("Scopes[%d] = %s, want %s", i, r.Scopes[i].Scope, k)
		}
	}
	if r.Scopes[0].DeviationPercent != 100 || r.Scopes[0].Status != StatusCritical {
		t.Errorf("unplanned scope = %+v", r.Scopes[0])
	}
	if r.Scopes[1].DeviationPercent != -25 {
		t.Errorf("heggen = %+v", r.Scopes[1])
	}

	var unplanned *Insight
	for i := range r.Insights {
		if r.Insights[i].Scope == scopes.Bomen {
			unplanned = &r.Insights[i]
		}
	}
	if unplanned == nil || unplanned.Type != InsightWarning {
		t.Errorf("expected warning insight for unplanned bomen, got %+v", r.Insights)
	}
}

func TestCalculateNacalculatieEmptyLog(t *testing.T) {
	plan := Voorcalculatie{TotalNormHours: 24, EstimatedDays: 2, HoursPerScope: map[scopes.Key]float64{scopes.Gras: 24}}
	r := CalculateNacalculatie(plan, nil, nil)

	if r.ActualHours != 0 || r.ActualDays != 0 || r.Workers != 0 {
		t.Errorf("report = %+v", r)
	}
	if r.DeviationPercent != -100 || r.Status != StatusCritical {
		t.Errorf("percent = %v, status = %s", r.DeviationPercent, r.Status)
	}
	if len(r.Insights) != 1 || r.Insights[0].Type != InsightInfo {
		t.Errorf("insights = %+v, want single info", r.Insights)
	}
}

func TestCalculateNacalculatieNothingPlannedNothingDone(t *testing.T) {
	r := CalculateNacalculatie(Voorcalculatie{}, nil, nil)
	if r.DeviationPercent != 0 || r.Status != StatusGood || len(r.Scopes) != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestCalculateNacalculatieEquipment(t *testing.T) {
	plan := Voorcalculatie{TotalNormHours: 10, PlannedEquipmentCost: 200, HoursPerScope: map[scopes.Key]float64{scopes.Grondwerk: 10}}
	entries := []TimeEntry{{Date: day(3), Worker: "Jan", Hours: 10, Scope: scopes.Grondwerk}}
	usage := []MachineUsage{
		{Date: day(3), Machine: "Minigraver", Hours: 4, Cost: 220},
		{Date: day(3), Machine: "Trilplaat", Hours: 2, Cost: 30},
	}

	r := CalculateNacalculatie(plan, entries, usage)

	if r.ActualEquipmentCost != 250 || r.EquipmentCostDeviation != 50 || r.EquipmentHours != 6 {
		t.Errorf("equipment = %v cost, %v deviation, %v hours", r.ActualEquipmentCost, r.EquipmentCostDeviation, r.EquipmentHours)
	}
	last := r.Insights[len(r.Insights)-1]
	if last.Type != InsightCritical || last.Title != "Machinekosten wijken af" {
		t.Errorf("last insight = %+v", last)
	}
}

func TestCalculateNacalculatieExtraDays(t *testing.T) {
	plan := Voorcalculatie{TotalNormHours: 16, EstimatedDays: 1.33, HoursPerScope: map[scopes.Key]float64{scopes.Gras: 16}}
	entries := []TimeEntry{
		{Date: day(1), Worker: "Jan", Hours: 6, Scope: scopes.Gras},
		{Date: day(2), Worker: "Jan", Hours: 5, Scope: scopes.Gras},
		{Date: day(3), Worker: "Jan", Hours: 5, Scope: scopes.Gras},
	}

	r := CalculateNacalculatie(plan, entries, nil)

	if r.Status != StatusGood {
		t.Fatalf("status = %s", r.Status)
	}
	found := false
	for _, in := range r.Insights {
		if in.Title == "Meer werkdagen dan gepland" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected extra-days insight, got %+v", r.Insights)
	}
}

func TestCalculateNacalculatieOrderIndependent(t *testing.T) {
	plan := BuildVoorcalculatie([]estimation.ScopeEstimate{
		{Scope: scopes.Grondwerk, Hours: 12.25},
		{Scope: scopes.Bestrating, Hours: 30.5},
		{Scope: scopes.Gras, Hours: 9.75},
	}, Team{Size: 2, EffectiveHoursPerDay: 6}, 150)

	var entries []TimeEntry
	workers := []string{"Jan", "Piet", "Kees"}
	scopeKeys := []scopes.Key{scopes.Grondwerk, scopes.Bestrating, scopes.Gras, ""}
	for i := 0; i < 40; i++ {
		entries = append(entries, TimeEntry{
			Date:   day(1 + i%9),
			Worker: workers[i%3],
			Hours:  0.25 * float64(1+i%13),
			Scope:  scopeKeys[i%4],
		})
	}
	want := CalculateNacalculatie(plan, entries, nil)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		shuffled := make([]TimeEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := CalculateNacalculatie(plan, shuffled, nil); !reflect.DeepEqual(got, want) {
			t.Fatal("shuffled log changed the report")
		}
	}
}

func TestBuildVoorcalculatie(t *testing.T) {
	v := BuildVoorcalculatie([]estimation.ScopeEstimate{
		{Scope: scopes.Bestrating, Hours: 60},
		{Scope: scopes.Gras, Hours: 40},
		{Scope: scopes.Overig},
	}, Team{Size: 2, EffectiveHoursPerDay: 6}, 120)

	if v.TotalNormHours != 100 || v.EstimatedDays != 8.33 {
		t.Errorf("voorcalculatie = %+v", v)
	}
	if _, ok := v.HoursPerScope[scopes.Overig]; ok {
		t.Error("scope without hours should not be planned")
	}
	if math.Abs(v.PlannedEquipmentCost-120) > 1e-9 || v.Team() != (Team{Size: 2, EffectiveHoursPerDay: 6}) {
		t.Errorf("voorcalculatie = %+v", v)
	}
}

func TestTimeEntryValidate(t *testing.T) {
	ok := TimeEntry{Date: day(1), Worker: "Jan", Hours: 8, Scope: scopes.Heggen}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	bad := []TimeEntry{
		{Worker: "Jan", Hours: 8},
		{Date: day(1), Hours: 8},
		{Date: day(1), Worker: "Jan", Hours: 0},
		{Date: day(1), Worker: "Jan", Hours: 25},
		{Date: day(1), Worker: "Jan", Hours: 8, Scope: "zwembad"},
	}
	for _, e := range bad {
		if err := e.Validate(); err == nil {
			t.Errorf("expected error for %+v", e)
		}
	}
}
