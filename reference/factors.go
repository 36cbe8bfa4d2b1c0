// Package reference holds the read-only tables the estimation engine consults:
// labor norms, categorical multipliers, correction factors and the price book.
package reference

import "sort"

// Category names one correction-factor table.
type Category string

const (
	Bereikbaarheid Category = "bereikbaarheid"
	Achterstand    Category = "achterstand"
	Complexiteit   Category = "complexiteit"
	Intensiteit    Category = "intensiteit"
	Snijwerk       Category = "snijwerk"
)

// Categories returns the correction categories in composition order.
func Categories() []Category {
	return []Category{Bereikbaarheid, Achterstand, Complexiteit, Intensiteit, Snijwerk}
}

// Level is a categorical level within a correction category.
type Level string

const (
	// bereikbaarheid
	LevelGoed    Level = "goed"
	LevelBeperkt Level = "beperkt"
	LevelSlecht  Level = "slecht"

	// achterstand
	LevelGeen  Level = "geen"
	LevelLicht Level = "licht"
	LevelMatig Level = "matig"
	LevelZwaar Level = "zwaar"

	// complexiteit, snijwerk and intensiteit
	LevelLaag      Level = "laag"
	LevelGemiddeld Level = "gemiddeld"
	LevelNormaal   Level = "normaal"
	LevelHoog      Level = "hoog"
)

// CorrectionFactor is one row of the correction-factor table.
type CorrectionFactor struct {
	Category    Category `json:"categorie"`
	Level       Level    `json:"niveau"`
	Factor      float64  `json:"factor"`
	Description string   `json:"omschrijving,omitempty"`
}

// CorrectionTable maps category -> level -> factor. A missing entry is neutral.
type CorrectionTable struct {
	factors map[Category]map[Level]float64
}

func NewCorrectionTable(rows []CorrectionFactor) *CorrectionTable {
	t := &CorrectionTable{factors: make(map[Category]map[Level]float64)}
	for _, r := range rows {
		levels, ok := t.factors[r.Category]
		if !ok {
			levels = make(map[Level]float64)
			t.factors[r.Category] = levels
		}
		levels[r.Level] = r.Factor
	}
	return t
}

// Lookup reports the factor for a category level. ok is false when the table
// has no such entry; callers treat that as 1.0.
func (t *CorrectionTable) Lookup(c Category, l Level) (float64, bool) {
	if t == nil {
		return 1.0, false
	}
	f, ok := t.factors[c][l]
	if !ok {
		return 1.0, false
	}
	return f, true
}

// Levels lists the known levels of a category, sorted by factor then name.
func (t *CorrectionTable) Levels(c Category) []Level {
	if t == nil {
		return nil
	}
	levels := make([]Level, 0, len(t.factors[c]))
	for l := range t.factors[c] {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		fi, fj := t.factors[c][levels[i]], t.factors[c][levels[j]]
		if fi != fj {
			return fi < fj
		}
		return levels[i] < levels[j]
	})
	return levels
}
