package search

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration turns "2h 45m" into 2.75 hours. A missing minutes token
// counts as zero; anything unparsable yields 0.
func ParseDuration(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	var hours, minutes int
	for i, f := range fields {
		unit := f[len(f)-1]
		n, err := strconv.Atoi(strings.TrimRight(f, "hm"))
		if err != nil {
			return 0
		}
		switch {
		case unit == 'h' && i == 0:
			hours = n
		case unit == 'm':
			minutes = n
		default:
			return 0
		}
	}
	return float64(hours) + float64(minutes)/60
}

// DateWindow is the set of dates a flexible search would accept. Flights
// carry no date, so the window only echoes caller intent back.
func DateWindow(date string, flexible bool) []string {
	if !flexible || date == "" {
		return []string{date}
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return []string{date}
	}
	return []string{
		d.AddDate(0, 0, -1).Format(dateLayout),
		date,
		d.AddDate(0, 0, 1).Format(dateLayout),
	}
}
