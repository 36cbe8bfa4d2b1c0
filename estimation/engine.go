package estimation

import (
	"fmt"
	"sort"

	"offertetool/reference"
	"offertetool/scopes"
)

// ScopeEstimate is a scope's calculator result after corrections. Hours is
// the quarter-rounded corrected figure that quotes and planning use.
type ScopeEstimate struct {
	Scope          scopes.Key      `json:"scope"`
	NormHours      float64         `json:"normuren"`
	CorrectedHours float64         `json:"gecorrigeerdeUren"`
	Hours          float64         `json:"uren"`
	Factors        []AppliedFactor `json:"factoren"`
	Activities     []Activity      `json:"activiteiten,omitempty"`
	Materials      []Material      `json:"materialen,omitempty"`
	Equipment      []EquipmentUse  `json:"machines,omitempty"`
	Notes          []string        `json:"opmerkingen,omitempty"`
	MissingNorms   []string        `json:"ontbrekendeNormen,omitempty"`
}

// Engine runs registered calculators and applies correction factors.
type Engine struct {
	calculators []Calculator
	norms       *reference.NormTable
	factors     *reference.CorrectionTable
}

// NewEngine creates an Engine with no calculators registered.
func NewEngine(norms *reference.NormTable, factors *reference.CorrectionTable) *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
		norms:       norms,
		factors:     factors,
	}
}

// NewDefaultEngine creates an Engine with a calculator for every known scope.
func NewDefaultEngine(norms *reference.NormTable, factors *reference.CorrectionTable) *Engine {
	e := NewEngine(norms, factors)
	for _, c := range DefaultCalculators() {
		e.Register(c)
	}
	return e
}

// Register panics if a calculator for the same scope is already registered.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Scope() == c.Scope() {
			panic(fmt.Sprintf("estimation: calculator for %q already registered", c.Scope()))
		}
	}
	e.calculators = append(e.calculators, c)
}

func (e *Engine) calculator(scope scopes.Key) (Calculator, bool) {
	for _, c := range e.calculators {
		if c.Scope() == scope {
			return c, true
		}
	}
	return nil, false
}

// EstimateScope estimates one input. A scope without a calculator
// estimates to zero.
func (e *Engine) EstimateScope(in scopes.Input, cond Conditions) (ScopeEstimate, error) {
	calc, ok := e.calculator(in.Key())
	if !ok {
		return ScopeEstimate{Scope: in.Key()}, nil
	}
	res, err := calc.Calculate(in, e.norms)
	if err != nil {
		return ScopeEstimate{}, err
	}
	corr := ApplyCorrections(res.Hours, SelectionFor(in, cond), e.factors)
	return ScopeEstimate{
		Scope:          in.Key(),
		NormHours:      corr.BaseHours,
		CorrectedHours: corr.CorrectedHours,
		Hours:          RoundToQuarter(corr.CorrectedHours),
		Factors:        corr.Factors,
		Activities:     res.Activities,
		Materials:      res.Materials,
		Equipment:      res.Equipment,
		Notes:          res.Notes,
		MissingNorms:   res.MissingNorms,
	}, nil
}

// Estimate runs every input and returns the estimates in canonical scope
// order. A scope may appear at most once.
func (e *Engine) Estimate(inputs []scopes.Input, cond Conditions) ([]ScopeEstimate, error) {
	sorted := make([]scopes.Input, len(inputs))
	copy(sorted, inputs)
	seen := make(map[scopes.Key]bool, len(sorted))
	for _, in := range sorted {
		if seen[in.Key()] {
			return nil, fmt.Errorf("estimation: scope %q given twice", in.Key())
		}
		seen[in.Key()] = true
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return scopes.Less(sorted[i].Key(), sorted[j].Key())
	})

	out := make([]ScopeEstimate, 0, len(sorted))
	for _, in := range sorted {
		est, err := e.EstimateScope(in, cond)
		if err != nil {
			return nil, fmt.Errorf("estimating %s: %w", in.Key(), err)
		}
		out = append(out, est)
	}
	return out, nil
}
