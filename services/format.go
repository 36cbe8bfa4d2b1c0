package services

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatEUR formats an amount in Dutch notation, e.g. € 1.234,56.
func FormatEUR(amount float64) string {
	amount = RoundMoney(amount)
	if amount < 0 {
		return "-€ " + humanize.FormatFloat("#.###,##", -amount)
	}
	return "€ " + humanize.FormatFloat("#.###,##", amount)
}

// FormatHours formats hours with a decimal comma and without trailing zeros.
func FormatHours(hours float64) string {
	s := humanize.FormatFloat("#.###,##", RoundMoney(hours))
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ",")
	if s == "" || s == "-" {
		s = "0"
	}
	return s + " uur"
}

// FormatPercent formats a percentage with one decimal and an explicit sign.
func FormatPercent(pct float64) string {
	s := humanize.FormatFloat("#.###,#", pct)
	if pct > 0 {
		s = "+" + s
	}
	return s + "%"
}
