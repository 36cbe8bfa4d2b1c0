package reference

import "sort"

// Normuur is the standard labor time for one unit of an activity within a scope.
type Normuur struct {
	Scope        string  `json:"scope"`
	Activity     string  `json:"activiteit"`
	HoursPerUnit float64 `json:"normuurPerEenheid"`
	Unit         string  `json:"eenheid"`
	Description  string  `json:"omschrijving,omitempty"`
}

// Multiplier scales a scope's norm hours for one level of a categorical
// dimension, e.g. bestrating/type/natuursteen.
type Multiplier struct {
	Scope     string  `json:"scope"`
	Dimension string  `json:"dimensie"`
	Level     string  `json:"niveau"`
	Factor    float64 `json:"factor"`
}

type normKey struct {
	scope, activity string
}

type multiplierKey struct {
	scope, dimension, level string
}

// NormTable is the read-only lookup over norms and multipliers.
type NormTable struct {
	norms       map[normKey]Normuur
	multipliers map[multiplierKey]float64
}

func NewNormTable(norms []Normuur, multipliers []Multiplier) *NormTable {
	t := &NormTable{
		norms:       make(map[normKey]Normuur, len(norms)),
		multipliers: make(map[multiplierKey]float64, len(multipliers)),
	}
	for _, n := range norms {
		t.norms[normKey{n.Scope, n.Activity}] = n
	}
	for _, m := range multipliers {
		t.multipliers[multiplierKey{m.Scope, m.Dimension, m.Level}] = m.Factor
	}
	return t
}

func (t *NormTable) Norm(scope, activity string) (Normuur, bool) {
	if t == nil {
		return Normuur{}, false
	}
	n, ok := t.norms[normKey{scope, activity}]
	return n, ok
}

func (t *NormTable) Multiplier(scope, dimension, level string) (float64, bool) {
	if t == nil {
		return 1.0, false
	}
	f, ok := t.multipliers[multiplierKey{scope, dimension, level}]
	if !ok {
		return 1.0, false
	}
	return f, true
}

// Norms returns every norm sorted by scope and activity.
func (t *NormTable) Norms() []Normuur {
	if t == nil {
		return nil
	}
	out := make([]Normuur, 0, len(t.norms))
	for _, n := range t.norms {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}
