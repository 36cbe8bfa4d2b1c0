package services

import (
	"fmt"
	"math"

	"offertetool/scopes"
)

type InsightType string

const (
	InsightSuccess  InsightType = "success"
	InsightInfo     InsightType = "info"
	InsightWarning  InsightType = "warning"
	InsightCritical InsightType = "critical"
)

type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"titel"`
	Description string      `json:"beschrijving"`
	Scope       scopes.Key  `json:"scope,omitempty"`
}

func insightFor(s DeviationStatus) InsightType {
	switch s {
	case StatusGood:
		return InsightSuccess
	case StatusWarning:
		return InsightWarning
	default:
		return InsightCritical
	}
}

func moreOrLess(delta float64) string {
	if delta < 0 {
		return "minder"
	}
	return "meer"
}

// GenerateInsights derives the ordered insight list from a report alone:
// the total first, then scopes worst first, then days, equipment and
// unscoped hours.
func GenerateInsights(r NacalculatieReport) []Insight {
	if r.ActualHours == 0 && r.ActualEquipmentCost == 0 {
		return []Insight{{
			Type:        InsightInfo,
			Title:       "Nog geen registraties",
			Description: fmt.Sprintf("Er zijn nog geen uren of machinekosten geregistreerd. Gepland: %s.", FormatHours(r.PlannedHours)),
		}}
	}

	var out []Insight

	switch r.Status {
	case StatusGood:
		out = append(out, Insight{
			Type:  InsightSuccess,
			Title: "Uren binnen de voorcalculatie",
			Description: fmt.Sprintf("%s gewerkt tegen %s gepland (%s).",
				FormatHours(r.ActualHours), FormatHours(r.PlannedHours), FormatPercent(r.DeviationPercent)),
		})
	default:
		title := "Uren wijken af van de voorcalculatie"
		if r.Status == StatusCritical {
			title = "Grote afwijking in uren"
		}
		out = append(out, Insight{
			Type:  insightFor(r.Status),
			Title: title,
			Description: fmt.Sprintf("%s %s gewerkt dan gepland: %s tegen %s (%s).",
				FormatHours(math.Abs(r.DeviationHours)), moreOrLess(r.DeviationHours),
				FormatHours(r.ActualHours), FormatHours(r.PlannedHours), FormatPercent(r.DeviationPercent)),
		})
	}

	for _, s := range r.Scopes {
		if s.PlannedHours == 0 && s.ActualHours > 0 {
			out = append(out, Insight{
				Type:  InsightWarning,
				Title: "Niet begrote werkzaamheden: " + s.Scope.Label(),
				Description: fmt.Sprintf("Er is %s geregistreerd op %s zonder voorcalculatie.",
					FormatHours(s.ActualHours), s.Scope.Label()),
				Scope: s.Scope,
			})
			continue
		}
		if s.Status == StatusGood {
			continue
		}
		out = append(out, Insight{
			Type:  insightFor(s.Status),
			Title: fmt.Sprintf("%s: %s uren", s.Scope.Label(), FormatPercent(s.DeviationPercent)),
			Description: fmt.Sprintf("%s %s dan gepland (%s tegen %s).",
				FormatHours(math.Abs(s.DeviationHours)), moreOrLess(s.DeviationHours),
				FormatHours(s.ActualHours), FormatHours(s.PlannedHours)),
			Scope: s.Scope,
		})
	}

	if r.PlannedDays > 0 && r.ActualDays > 0 {
		planned := int(math.Ceil(r.PlannedDays))
		switch {
		case r.ActualDays > planned:
			out = append(out, Insight{
				Type:        InsightWarning,
				Title:       "Meer werkdagen dan gepland",
				Description: fmt.Sprintf("Er is op %d dagen gewerkt, gepland waren %d.", r.ActualDays, planned),
			})
		case r.ActualDays < planned && r.Status == StatusGood:
			out = append(out, Insight{
				Type:        InsightInfo,
				Title:       "Minder werkdagen dan gepland",
				Description: fmt.Sprintf("Er is op %d dagen gewerkt, gepland waren %d.", r.ActualDays, planned),
			})
		}
	}

	switch {
	case r.PlannedEquipmentCost > 0:
		pct := deviationPercent(r.ActualEquipmentCost, r.PlannedEquipmentCost)
		if status := GetDeviationStatus(pct); status != StatusGood {
			out = append(out, Insight{
				Type:  insightFor(status),
				Title: "Machinekosten wijken af",
				Description: fmt.Sprintf("%s aan machinekosten tegen %s begroot (%s).",
					FormatEUR(r.ActualEquipmentCost), FormatEUR(r.PlannedEquipmentCost), FormatPercent(pct)),
			})
		}
	case r.ActualEquipmentCost > 0:
		out = append(out, Insight{
			Type:        InsightInfo,
			Title:       "Machinekosten niet begroot",
			Description: fmt.Sprintf("Er is %s aan machinekosten geregistreerd zonder begroting.", FormatEUR(r.ActualEquipmentCost)),
		})
	}

	if r.UnscopedHours > 0 {
		out = append(out, Insight{
			Type:        InsightInfo,
			Title:       "Uren zonder scope",
			Description: fmt.Sprintf("%s is niet aan een scope toegewezen en telt alleen mee in het totaal.", FormatHours(r.UnscopedHours)),
		})
	}
	return out
}
