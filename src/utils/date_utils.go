package utils

import (
	"strings"
	"time"
)

// ISODateFormat is the canonical storage format for every date column.
const ISODateFormat = "2006-01-02"

// dateLayouts lists the source formats seen in statement text, most
// specific first so two-digit years do not shadow four-digit ones.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2006/01/02",
	"02.01.2006",
	"01/02/06",
	"1/2/06",
}

// NormalizeDate converts a date string in any supported source format to
// ISO 2006-01-02. The second return is false when no layout matches.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODateFormat), true
		}
	}
	return "", false
}

// ResolveDayMonth attaches a year to a month/day fragment like "03/15",
// common in transaction lines that rely on the statement year.
func ResolveDayMonth(monthDay string, year int) (string, bool) {
	monthDay = strings.TrimSpace(monthDay)
	for _, layout := range []string{"01/02", "1/2", "01-02"} {
		if t, err := time.Parse(layout, monthDay); err == nil {
			return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
				Format(ISODateFormat), true
		}
	}
	return "", false
}
