// Package estimation turns validated scope measurements into norm hours,
// material quantities and equipment use, and applies correction factors.
package estimation

import (
	"fmt"
	"math"

	"offertetool/reference"
	"offertetool/scopes"
)

// Activity is one norm-based labor component of a scope.
type Activity struct {
	Name         string  `json:"activiteit"`
	Quantity     float64 `json:"hoeveelheid"`
	Unit         string  `json:"eenheid"`
	HoursPerUnit float64 `json:"normuurPerEenheid"`
	Multiplier   float64 `json:"multiplier"`
	Hours        float64 `json:"uren"`
}

// Material is a quantity the quote has to price from the price book.
type Material struct {
	Category string  `json:"categorie"`
	Name     string  `json:"naam"`
	Quantity float64 `json:"hoeveelheid"`
	Unit     string  `json:"eenheid"`
}

// EquipmentUse is machine time tied to a labor activity.
type EquipmentUse struct {
	Name  string  `json:"machine"`
	Hours float64 `json:"uren"`
}

// Result is the unrounded output of one scope calculator.
type Result struct {
	Scope        scopes.Key     `json:"scope"`
	Hours        float64        `json:"uren"`
	Activities   []Activity     `json:"activiteiten,omitempty"`
	Materials    []Material     `json:"materialen,omitempty"`
	Equipment    []EquipmentUse `json:"machines,omitempty"`
	Notes        []string       `json:"opmerkingen,omitempty"`
	MissingNorms []string       `json:"ontbrekendeNormen,omitempty"`
}

// sheet accumulates a Result in calculation order.
type sheet struct {
	norms *reference.NormTable
	res   Result
}

func newSheet(scope scopes.Key, norms *reference.NormTable) *sheet {
	return &sheet{norms: norms, res: Result{Scope: scope}}
}

// activity books quantity × norm × multiplier. Non-positive quantities and
// missing norms contribute nothing; missing norms are reported.
func (s *sheet) activity(name string, quantity, multiplier float64) float64 {
	if quantity <= 0 {
		return 0
	}
	n, ok := s.norms.Norm(string(s.res.Scope), name)
	if !ok {
		s.res.MissingNorms = append(s.res.MissingNorms, string(s.res.Scope)+"/"+name)
		return 0
	}
	hours := quantity * n.HoursPerUnit * multiplier
	s.res.Activities = append(s.res.Activities, Activity{
		Name:         name,
		Quantity:     quantity,
		Unit:         n.Unit,
		HoursPerUnit: n.HoursPerUnit,
		Multiplier:   multiplier,
		Hours:        hours,
	})
	s.res.Hours += hours
	return hours
}

// multiplier returns the categorical multiplier, 1.0 when the table has none.
func (s *sheet) multiplier(dimension, level string) float64 {
	f, _ := s.norms.Multiplier(string(s.res.Scope), dimension, level)
	return f
}

func (s *sheet) material(category, name string, quantity float64, unit string) {
	if quantity <= 0 {
		return
	}
	s.res.Materials = append(s.res.Materials, Material{
		Category: category,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	})
}

func (s *sheet) equipment(name string, hours float64) {
	if hours <= 0 {
		return
	}
	s.res.Equipment = append(s.res.Equipment, EquipmentUse{Name: name, Hours: hours})
}

func (s *sheet) note(format string, args ...any) {
	s.res.Notes = append(s.res.Notes, fmt.Sprintf(format, args...))
}

func (s *sheet) result() Result {
	return s.res
}

// RoundToQuarter rounds hours to the nearest quarter hour.
func RoundToQuarter(hours float64) float64 {
	return math.Round(hours*4) / 4
}
