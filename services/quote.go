// Package services holds the quote, planning and nacalculatie logic and the
// orchestration around the persisted store.
package services

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"offertetool/estimation"
	"offertetool/reference"
	"offertetool/scopes"
)

type LineType string

const (
	LineMaterial  LineType = "materiaal"
	LineLabor     LineType = "arbeid"
	LineEquipment LineType = "machine"
)

// QuoteLine is one priced row of a quote.
type QuoteLine struct {
	ID             string     `json:"id"`
	Scope          scopes.Key `json:"scope,omitempty"`
	Type           LineType   `json:"type"`
	Description    string     `json:"omschrijving"`
	Unit           string     `json:"eenheid"`
	Quantity       float64    `json:"hoeveelheid"`
	UnitPrice      float64    `json:"prijsPerEenheid"`
	Total          float64    `json:"totaal"`
	MarginOverride *float64   `json:"margeOverride,omitempty"`
	Manual         bool       `json:"handmatig"`
	ProductID      string     `json:"productId,omitempty"`
}

func (l QuoteLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Type, validation.Required, validation.In(LineMaterial, LineLabor, LineEquipment)),
		validation.Field(&l.Description, validation.Required),
		validation.Field(&l.Quantity, validation.Min(0.0)),
		validation.Field(&l.UnitPrice, validation.Min(0.0)),
		validation.Field(&l.MarginOverride, validation.Min(0.0)),
	)
}

type QuoteTotals struct {
	Materials     float64 `json:"materiaalkosten"`
	Labor         float64 `json:"arbeidskosten"`
	Equipment     float64 `json:"machinekosten"`
	TotalHours    float64 `json:"totaalUren"`
	Subtotal      float64 `json:"subtotaal"`
	MarginAmount  float64 `json:"marge"`
	MarginPercent float64 `json:"margePercentage"`
	TotalExVAT    float64 `json:"totaalExBtw"`
	VAT           float64 `json:"btw"`
	TotalInclVAT  float64 `json:"totaalInclBtw"`
}

// Rounded returns the totals rounded to cents for persistence and display.
func (t QuoteTotals) Rounded() QuoteTotals {
	return QuoteTotals{
		Materials:     RoundMoney(t.Materials),
		Labor:         RoundMoney(t.Labor),
		Equipment:     RoundMoney(t.Equipment),
		TotalHours:    RoundMoney(t.TotalHours),
		Subtotal:      RoundMoney(t.Subtotal),
		MarginAmount:  RoundMoney(t.MarginAmount),
		MarginPercent: RoundMoney(t.MarginPercent),
		TotalExVAT:    RoundMoney(t.TotalExVAT),
		VAT:           RoundMoney(t.VAT),
		TotalInclVAT:  RoundMoney(t.TotalInclVAT),
	}
}

// Pricing is the resolved rate and margin configuration of one quote.
type Pricing struct {
	HourlyRate    float64                `json:"uurtarief"`
	MarginPercent float64                `json:"margePercentage"`
	ScopeMargins  map[scopes.Key]float64 `json:"scopeMarges,omitempty"`
	TaxPercent    float64                `json:"btwPercentage"`
}

func (p Pricing) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.HourlyRate, validation.Min(0.0)),
		validation.Field(&p.MarginPercent, validation.Min(0.0)),
		validation.Field(&p.TaxPercent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&p.ScopeMargins, validation.Each(validation.Min(0.0))),
	)
}

// marginFor resolves line override, then scope override, then the global margin.
func (p Pricing) marginFor(l QuoteLine) float64 {
	if l.MarginOverride != nil {
		return *l.MarginOverride
	}
	if m, ok := p.ScopeMargins[l.Scope]; ok {
		return m
	}
	return p.MarginPercent
}

type Quote struct {
	Lines           []QuoteLine `json:"regels"`
	Totals          QuoteTotals `json:"totalen"`
	MissingProducts []string    `json:"ontbrekendeProducten,omitempty"`
}

var lineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("offertetool:offerte-regel"))

func lineID(scope scopes.Key, typ LineType, name string) string {
	return uuid.NewSHA1(lineNamespace, []byte(string(scope)+"/"+string(typ)+"/"+name)).String()
}

// CalculateTotals applies one margin percentage to the three cost groups.
func CalculateTotals(materials, labor, equipment, marginPercent, taxPercent float64) QuoteTotals {
	t := QuoteTotals{
		Materials: materials,
		Labor:     labor,
		Equipment: equipment,
		Subtotal:  sumExact(materials, labor, equipment),
	}
	return finishTotals(t, t.Subtotal*marginPercent/100, marginPercent, taxPercent)
}

func finishTotals(t QuoteTotals, margin, marginPercent, taxPercent float64) QuoteTotals {
	t.MarginAmount = margin
	t.MarginPercent = marginPercent
	t.TotalExVAT = sumExact(t.Subtotal, margin)
	t.VAT = t.TotalExVAT * taxPercent / 100
	t.TotalInclVAT = sumExact(t.TotalExVAT, t.VAT)
	return t
}

// AggregateQuote prices scope estimates into lines and totals. Manual lines
// are appended unchanged apart from their computed total. The outcome does
// not depend on the order of estimates.
func AggregateQuote(estimates []estimation.ScopeEstimate, manual []QuoteLine, book reference.PriceBook, p Pricing) Quote {
	sorted := make([]estimation.ScopeEstimate, len(estimates))
	copy(sorted, estimates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scopes.Less(sorted[i].Scope, sorted[j].Scope)
	})

	var q Quote
	missing := make(map[string]bool)
	for _, est := range sorted {
		if est.Hours > 0 {
			q.Lines = append(q.Lines, QuoteLine{
				ID:          lineID(est.Scope, LineLabor, "arbeid"),
				Scope:       est.Scope,
				Type:        LineLabor,
				Description: "Arbeid " + est.Scope.Label(),
				Unit:        "uur",
				Quantity:    est.Hours,
				UnitPrice:   p.HourlyRate,
			})
		}
		for _, m := range est.Materials {
			line := QuoteLine{
				ID:          lineID(est.Scope, LineMaterial, m.Category+"/"+m.Name),
				Scope:       est.Scope,
				Type:        LineMaterial,
				Description: m.Name,
				Unit:        m.Unit,
				Quantity:    m.Quantity,
			}
			if prod, ok := book.Find(m.Category, m.Name); ok {
				line.UnitPrice = prod.EffectivePrice()
				line.ProductID = prod.ID
			} else {
				missing[m.Category+"/"+m.Name] = true
			}
			q.Lines = append(q.Lines, line)
		}
		for _, e := range est.Equipment {
			line := QuoteLine{
				ID:          lineID(est.Scope, LineEquipment, e.Name),
				Scope:       est.Scope,
				Type:        LineEquipment,
				Description: e.Name,
				Unit:        "uur",
				Quantity:    estimation.RoundToQuarter(e.Hours),
			}
			if prod, ok := book.Find("machines", e.Name); ok {
				line.UnitPrice = prod.EffectivePrice()
				line.ProductID = prod.ID
			} else {
				missing["machines/"+e.Name] = true
			}
			q.Lines = append(q.Lines, line)
		}
	}
	for _, m := range manual {
		m.Manual = true
		q.Lines = append(q.Lines, m)
	}

	var materials, labor, equipment, hours, margins []float64
	uniform := true
	for i := range q.Lines {
		l := &q.Lines[i]
		l.Total = l.Quantity * l.UnitPrice
		switch l.Type {
		case LineMaterial:
			materials = append(materials, l.Total)
		case LineLabor:
			labor = append(labor, l.Total)
			hours = append(hours, l.Quantity)
		case LineEquipment:
			equipment = append(equipment, l.Total)
		}
		pct := p.marginFor(*l)
		if pct != p.MarginPercent {
			uniform = false
		}
		margins = append(margins, l.Total*pct/100)
	}

	t := QuoteTotals{
		Materials:  sumExact(materials...),
		Labor:      sumExact(labor...),
		Equipment:  sumExact(equipment...),
		TotalHours: sumExact(hours...),
	}
	t.Subtotal = sumExact(t.Materials, t.Labor, t.Equipment)
	margin := sumExact(margins...)
	marginPct := p.MarginPercent
	if !uniform && t.Subtotal != 0 {
		marginPct = margin / t.Subtotal * 100
	}
	q.Totals = finishTotals(t, margin, marginPct, p.TaxPercent)

	for k := range missing {
		q.MissingProducts = append(q.MissingProducts, k)
	}
	sort.Strings(q.MissingProducts)
	return q
}
