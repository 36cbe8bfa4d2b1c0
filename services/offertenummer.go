package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuoteNumberPrefix is the part of a quote number shared by one calendar
// year, e.g. "OFF-2026-".
func QuoteNumberPrefix(t time.Time) string {
	return fmt.Sprintf("OFF-%d-", t.Year())
}

// FormatQuoteNumber constructs the quote number from its components.
// Format: OFF-{year}-{sequence}, sequence 3-digit zero-padded per year.
func FormatQuoteNumber(t time.Time, sequence int) string {
	return fmt.Sprintf("%s%03d", QuoteNumberPrefix(t), sequence)
}

// QuoteSequence extracts the sequence from a quote number of the year of t.
// Numbers of other years or without a numeric suffix report false.
func QuoteSequence(t time.Time, number string) (int, bool) {
	suffix, ok := strings.CutPrefix(number, QuoteNumberPrefix(t))
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
