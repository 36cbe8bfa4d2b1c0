// Package scopes defines the closed set of work scopes a garden quote is built
// from. Every scope has exactly one input variant; a variant that reaches the
// estimation engine has already passed its own validation.
package scopes

import "sort"

// Key identifies a scope.
type Key string

const (
	Grondwerk    Key = "grondwerk"
	WaterElectra Key = "water_electra"
	Bestrating   Key = "bestrating"
	Houtwerk     Key = "houtwerk"
	Borders      Key = "borders"
	Gras         Key = "gras"

	GrasOnderhoud    Key = "gras_onderhoud"
	BordersOnderhoud Key = "borders_onderhoud"
	Heggen           Key = "heggen"
	Bomen            Key = "bomen"
	Overig           Key = "overig"
)

// canonical order: construction in execution order, then maintenance.
var order = []Key{
	Grondwerk, WaterElectra, Bestrating, Houtwerk, Borders, Gras,
	GrasOnderhoud, BordersOnderhoud, Heggen, Bomen, Overig,
}

var labels = map[Key]string{
	Grondwerk:        "Grondwerk",
	WaterElectra:     "Water en elektra",
	Bestrating:       "Bestrating",
	Houtwerk:         "Houtwerk",
	Borders:          "Borders en beplanting",
	Gras:             "Gazon",
	GrasOnderhoud:    "Gazononderhoud",
	BordersOnderhoud: "Borderonderhoud",
	Heggen:           "Heggen snoeien",
	Bomen:            "Bomen snoeien",
	Overig:           "Overig onderhoud",
}

// All returns every known key in canonical order.
func All() []Key {
	out := make([]Key, len(order))
	copy(out, order)
	return out
}

func (k Key) Valid() bool {
	_, ok := labels[k]
	return ok
}

// Label is the Dutch display name; unknown keys render as themselves.
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

func (k Key) IsMaintenance() bool {
	switch k {
	case GrasOnderhoud, BordersOnderhoud, Heggen, Bomen, Overig:
		return true
	}
	return false
}

func (k Key) IsConstruction() bool {
	return k.Valid() && !k.IsMaintenance()
}

// Rank is the position in canonical order. Unknown keys rank after all known ones.
func (k Key) Rank() int {
	for i, o := range order {
		if o == k {
			return i
		}
	}
	return len(order)
}

// Sort orders keys canonically; unknown keys follow, alphabetically.
func Sort(keys []Key) {
	sort.SliceStable(keys, func(i, j int) bool {
		return Less(keys[i], keys[j])
	})
}

func Less(a, b Key) bool {
	ra, rb := a.Rank(), b.Rank()
	if ra != rb {
		return ra < rb
	}
	return a < b
}
