package estimation

import (
	"offertetool/reference"
	"offertetool/scopes"
)

// Conditions are the quote-level correction levels.
type Conditions struct {
	Accessibility reference.Level `json:"bereikbaarheid,omitempty"`
	Backlog       reference.Level `json:"achterstand,omitempty"`
	Complexity    reference.Level `json:"complexiteit,omitempty"`
}

// Selection is the level chosen per correction category. Absent categories
// resolve to a neutral 1.0.
type Selection map[reference.Category]reference.Level

// AppliedFactor is one resolved correction with its effect in percent.
type AppliedFactor struct {
	Category     reference.Category `json:"categorie"`
	Level        reference.Level    `json:"niveau,omitempty"`
	Factor       float64            `json:"factor"`
	DeltaPercent float64            `json:"deltaPercentage"`
}

type Correction struct {
	BaseHours      float64         `json:"basisUren"`
	CorrectedHours float64         `json:"gecorrigeerdeUren"`
	Factors        []AppliedFactor `json:"factoren"`
}

// ResolveFactor looks up one category level; unknown levels are neutral.
func ResolveFactor(table *reference.CorrectionTable, c reference.Category, l reference.Level) AppliedFactor {
	f := 1.0
	if l != "" {
		f, _ = table.Lookup(c, l)
	}
	return AppliedFactor{Category: c, Level: l, Factor: f, DeltaPercent: (f - 1) * 100}
}

// ApplyCorrections multiplies base hours by every category factor in the
// fixed order bereikbaarheid, achterstand, complexiteit, intensiteit, snijwerk.
func ApplyCorrections(baseHours float64, sel Selection, table *reference.CorrectionTable) Correction {
	c := Correction{BaseHours: baseHours, CorrectedHours: baseHours}
	for _, cat := range reference.Categories() {
		a := ResolveFactor(table, cat, sel[cat])
		c.Factors = append(c.Factors, a)
		c.CorrectedHours *= a.Factor
	}
	return c
}

// Applies reports whether a correction category is relevant to a scope.
func Applies(scope scopes.Key, c reference.Category) bool {
	switch c {
	case reference.Bereikbaarheid:
		return true
	case reference.Achterstand:
		return scope.IsMaintenance()
	case reference.Complexiteit:
		return scope.IsConstruction()
	case reference.Intensiteit:
		return scope == scopes.Borders || scope == scopes.BordersOnderhoud
	case reference.Snijwerk:
		return scope == scopes.Bestrating
	}
	return false
}

// SelectionFor combines quote conditions with the levels a variant carries,
// dropping categories that do not apply to the scope.
func SelectionFor(in scopes.Input, cond Conditions) Selection {
	sel := Selection{
		reference.Bereikbaarheid: cond.Accessibility,
		reference.Achterstand:    cond.Backlog,
		reference.Complexiteit:   cond.Complexity,
	}
	if fs, ok := in.(scopes.FactorSource); ok {
		for c, l := range fs.FactorLevels() {
			sel[c] = l
		}
	}
	for c, l := range sel {
		if l == "" || !Applies(in.Key(), c) {
			delete(sel, c)
		}
	}
	return sel
}
