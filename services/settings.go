package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"offertetool/config"
	"offertetool/estimation"
	"offertetool/reference"
	"offertetool/scopes"
)

// QuoteSettings are the per-quote overrides of the configured defaults.
// A nil pointer keeps the default.
type QuoteSettings struct {
	HourlyRate           *float64               `json:"uurtarief,omitempty"`
	MarginPercent        *float64               `json:"margePercentage,omitempty"`
	TaxPercent           *float64               `json:"btwPercentage,omitempty"`
	ScopeMargins         map[scopes.Key]float64 `json:"scopeMarges,omitempty"`
	TeamSize             *int                   `json:"teamGrootte,omitempty"`
	EffectiveHoursPerDay *float64               `json:"effectieveUrenPerDag,omitempty"`

	Accessibility reference.Level `json:"bereikbaarheid,omitempty"`
	Backlog       reference.Level `json:"achterstand,omitempty"`
	Complexity    reference.Level `json:"complexiteit,omitempty"`
}

func (s QuoteSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ScopeMargins, validation.By(knownScopeKeys)),
	)
}

func knownScopeKeys(value any) error {
	m, _ := value.(map[scopes.Key]float64)
	for k := range m {
		if !k.Valid() {
			return validation.NewError("validation_unknown_scope", fmt.Sprintf("onbekende scope %q", k))
		}
	}
	return nil
}

// ResolveSettings merges quote overrides onto the defaults once per
// calculation and validates the result.
func ResolveSettings(defaults config.Calculation, s QuoteSettings) (Pricing, Team, estimation.Conditions, error) {
	p := Pricing{
		HourlyRate:    defaults.HourlyRate,
		MarginPercent: defaults.MarginPercent,
		TaxPercent:    defaults.TaxPercent,
		ScopeMargins:  s.ScopeMargins,
	}
	if s.HourlyRate != nil {
		p.HourlyRate = *s.HourlyRate
	}
	if s.MarginPercent != nil {
		p.MarginPercent = *s.MarginPercent
	}
	if s.TaxPercent != nil {
		p.TaxPercent = *s.TaxPercent
	}

	team := Team{Size: defaults.TeamSize, EffectiveHoursPerDay: defaults.EffectiveHoursPerDay}
	if s.TeamSize != nil {
		team.Size = *s.TeamSize
	}
	if s.EffectiveHoursPerDay != nil {
		team.EffectiveHoursPerDay = *s.EffectiveHoursPerDay
	}

	cond := estimation.Conditions{
		Accessibility: s.Accessibility,
		Backlog:       s.Backlog,
		Complexity:    s.Complexity,
	}

	err := validation.Errors{
		"instellingen": s.Validate(),
		"prijzen":      p.Validate(),
		"team":         team.Validate(),
	}.Filter()
	if err != nil {
		return Pricing{}, Team{}, estimation.Conditions{}, &SettingsError{Err: err}
	}
	return p, team, cond, nil
}

// SettingsError reports invalid quote settings.
type SettingsError struct {
	Err error
}

func (e *SettingsError) Error() string { return "invalid quote settings: " + e.Err.Error() }
func (e *SettingsError) Unwrap() error { return e.Err }
