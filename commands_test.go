package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"offertetool/scopes"
	"offertetool/services"
)

func TestPrintNacalculatie(t *testing.T) {
	color.NoColor = true

	r := services.CalculateNacalculatie(
		services.Voorcalculatie{TotalNormHours: 40, EstimatedDays: 3.33, HoursPerScope: map[scopes.Key]float64{scopes.Bestrating: 40}},
		[]services.TimeEntry{{Worker: "Jan", Hours: 46, Scope: scopes.Bestrating}},
		nil,
	)

	var buf bytes.Buffer
	printNacalculatie(&buf, r)
	out := buf.String()

	for _, want := range []string{"Gepland:    40 uur", "+15,0% warning", "Bestrating", "46 uur"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
