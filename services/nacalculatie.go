package services

import (
	"math"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"offertetool/scopes"
)

// TimeEntry is one row of the append-only hour log. Scope is optional.
type TimeEntry struct {
	ID     string     `json:"id,omitempty"`
	Date   time.Time  `json:"datum"`
	Worker string     `json:"medewerker"`
	Hours  float64    `json:"uren"`
	Scope  scopes.Key `json:"scope,omitempty"`
	Note   string     `json:"notitie,omitempty"`
}

func (e TimeEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Date, validation.Required),
		validation.Field(&e.Worker, validation.Required, validation.Length(1, 100)),
		validation.Field(&e.Hours, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(24.0)),
		validation.Field(&e.Scope, validation.By(knownScope)),
	)
}

// MachineUsage is one row of the append-only equipment log.
type MachineUsage struct {
	ID      string    `json:"id,omitempty"`
	Date    time.Time `json:"datum"`
	Machine string    `json:"machine"`
	Hours   float64   `json:"uren"`
	Cost    float64   `json:"kosten"`
	Note    string    `json:"notitie,omitempty"`
}

func (u MachineUsage) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Date, validation.Required),
		validation.Field(&u.Machine, validation.Required),
		validation.Field(&u.Hours, validation.Min(0.0)),
		validation.Field(&u.Cost, validation.Min(0.0)),
	)
}

func knownScope(value any) error {
	k, _ := value.(scopes.Key)
	if k == "" || k.Valid() {
		return nil
	}
	return validation.NewError("validation_unknown_scope", "onbekende scope")
}

type DeviationStatus string

const (
	StatusGood     DeviationStatus = "good"
	StatusWarning  DeviationStatus = "warning"
	StatusCritical DeviationStatus = "critical"
)

const (
	goodThreshold    = 5.0
	warningThreshold = 15.0
)

// GetDeviationStatus classifies a deviation percentage. Both bounds are
// inclusive and the classification is symmetric around zero.
func GetDeviationStatus(percent float64) DeviationStatus {
	switch abs := math.Abs(percent); {
	case abs <= goodThreshold:
		return StatusGood
	case abs <= warningThreshold:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// deviationPercent is (actual-planned)/planned in percent at one decimal.
// Work without a plan counts as a full overrun.
func deviationPercent(actual, planned float64) float64 {
	if planned <= 0 {
		if actual > 0 {
			return 100
		}
		return 0
	}
	d := decimal.NewFromFloat(actual).Sub(decimal.NewFromFloat(planned))
	return d.Div(decimal.NewFromFloat(planned)).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

type ScopeDeviation struct {
	Scope            scopes.Key      `json:"scope"`
	PlannedHours     float64         `json:"geplandeUren"`
	ActualHours      float64         `json:"werkelijkeUren"`
	DeviationHours   float64         `json:"afwijkingUren"`
	DeviationPercent float64         `json:"afwijkingPercentage"`
	Status           DeviationStatus `json:"status"`
}

type NacalculatieReport struct {
	PlannedHours        float64                `json:"geplandeUren"`
	ActualHours         float64                `json:"werkelijkeUren"`
	PlannedDays         float64                `json:"geplandeDagen"`
	ActualDays          int                    `json:"werkelijkeDagen"`
	Workers             int                    `json:"aantalMedewerkers"`
	DeviationHours      float64                `json:"afwijkingUren"`
	DeviationPercent    float64                `json:"afwijkingPercentage"`
	Status              DeviationStatus        `json:"status"`
	ActualHoursPerScope map[scopes.Key]float64 `json:"werkelijkeUrenPerScope"`
	UnscopedHours       float64                `json:"urenZonderScope"`

	PlannedEquipmentCost   float64 `json:"geplandeMachinekosten"`
	ActualEquipmentCost    float64 `json:"werkelijkeMachinekosten"`
	EquipmentCostDeviation float64 `json:"afwijkingMachinekosten"`
	EquipmentHours         float64 `json:"machineUren"`

	Scopes   []ScopeDeviation `json:"scopeAfwijkingen"`
	Insights []Insight        `json:"inzichten"`
}

// CalculateNacalculatie compares the voorcalculatie with the logged actuals.
// Entry order does not affect the result.
func CalculateNacalculatie(plan Voorcalculatie, entries []TimeEntry, usage []MachineUsage) NacalculatieReport {
	r := NacalculatieReport{
		PlannedHours:         plan.TotalNormHours,
		PlannedDays:          plan.EstimatedDays,
		PlannedEquipmentCost: plan.PlannedEquipmentCost,
		ActualHoursPerScope:  make(map[scopes.Key]float64),
	}

	all := make([]float64, 0, len(entries))
	unscoped := []float64{}
	perScope := make(map[scopes.Key][]float64)
	days := make(map[string]bool)
	workers := make(map[string]bool)
	for _, e := range entries {
		all = append(all, e.Hours)
		days[e.Date.Format(time.DateOnly)] = true
		workers[e.Worker] = true
		if e.Scope == "" {
			unscoped = append(unscoped, e.Hours)
			continue
		}
		perScope[e.Scope] = append(perScope[e.Scope], e.Hours)
	}
	r.ActualHours = sumExact(all...)
	r.UnscopedHours = sumExact(unscoped...)
	r.ActualDays = len(days)
	r.Workers = len(workers)
	for k, hours := range perScope {
		r.ActualHoursPerScope[k] = sumExact(hours...)
	}

	r.DeviationHours = sumExact(r.ActualHours, -r.PlannedHours)
	r.DeviationPercent = deviationPercent(r.ActualHours, r.PlannedHours)
	r.Status = GetDeviationStatus(r.DeviationPercent)

	keys := make([]scopes.Key, 0, len(plan.HoursPerScope)+len(r.ActualHoursPerScope))
	seen := make(map[scopes.Key]bool)
	for k := range plan.HoursPerScope {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range r.ActualHoursPerScope {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	scopes.Sort(keys)

	for _, k := range keys {
		planned, actual := plan.HoursPerScope[k], r.ActualHoursPerScope[k]
		pct := deviationPercent(actual, planned)
		r.Scopes = append(r.Scopes, ScopeDeviation{
			Scope:            k,
			PlannedHours:     planned,
			ActualHours:      actual,
			DeviationHours:   sumExact(actual, -planned),
			DeviationPercent: pct,
			Status:           GetDeviationStatus(pct),
		})
	}
	sort.SliceStable(r.Scopes, func(i, j int) bool {
		return math.Abs(r.Scopes[i].DeviationPercent) > math.Abs(r.Scopes[j].DeviationPercent)
	})

	costs := make([]float64, 0, len(usage))
	machineHours := make([]float64, 0, len(usage))
	for _, u := range usage {
		costs = append(costs, u.Cost)
		machineHours = append(machineHours, u.Hours)
	}
	r.ActualEquipmentCost = sumExact(costs...)
	r.EquipmentHours = sumExact(machineHours...)
	r.EquipmentCostDeviation = sumExact(r.ActualEquipmentCost, -r.PlannedEquipmentCost)

	r.Insights = GenerateInsights(r)
	return r
}
