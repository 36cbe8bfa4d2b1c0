package services

import (
	"offertetool/estimation"
	"offertetool/scopes"
)

// Voorcalculatie is the planned side of a project, fixed when the quote is
// calculated and compared against logged actuals afterwards.
type Voorcalculatie struct {
	TotalNormHours       float64                `json:"totaalNormuren"`
	EstimatedDays        float64                `json:"geschatteDagen"`
	HoursPerScope        map[scopes.Key]float64 `json:"normurenPerScope"`
	TeamSize             int                    `json:"teamGrootte"`
	EffectiveHoursPerDay float64                `json:"effectieveUrenPerDag"`
	PlannedEquipmentCost float64                `json:"geplandeMachinekosten"`
}

func (v Voorcalculatie) Team() Team {
	return Team{Size: v.TeamSize, EffectiveHoursPerDay: v.EffectiveHoursPerDay}
}

// BuildVoorcalculatie records the quarter-rounded corrected hours per scope.
func BuildVoorcalculatie(estimates []estimation.ScopeEstimate, team Team, plannedEquipmentCost float64) Voorcalculatie {
	v := Voorcalculatie{
		HoursPerScope:        make(map[scopes.Key]float64, len(estimates)),
		TeamSize:             team.Size,
		EffectiveHoursPerDay: team.EffectiveHoursPerDay,
		PlannedEquipmentCost: plannedEquipmentCost,
	}
	hours := make([]float64, 0, len(estimates))
	for _, est := range estimates {
		if est.Hours <= 0 {
			continue
		}
		v.HoursPerScope[est.Scope] = est.Hours
		hours = append(hours, est.Hours)
	}
	v.TotalNormHours = sumExact(hours...)
	v.EstimatedDays = DaysFor(v.TotalNormHours, team.Capacity())
	return v
}
