package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Release-date badge classifications.
const (
	BadgeCurrent = "current" // release month strictly before the current month
	BadgeFuture  = "future"  // release month at or after the current month
)

var monthYearRE = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)

// Fallback layouts tried for free-form release dates.
var releaseDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"January 2006",
	"Jan 2, 2006",
	"Jan 2006",
}

// FormatReleaseDate normalizes a free-form release date to MM/YYYY and
// classifies it against the current month. See FormatReleaseDateAt.
func FormatReleaseDate(raw string) (string, string) {
	return FormatReleaseDateAt(raw, time.Now())
}

// FormatReleaseDateAt accepts MM/YYYY, M/YYYY, or a generic parseable date and
// returns the normalized MM/YYYY form plus a badge: BadgeCurrent when the
// release month/year is strictly before now's month/year, BadgeFuture when at
// or after. Unparseable input returns the raw string unchanged and an empty
// badge.
func FormatReleaseDateAt(raw string, now time.Time) (string, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw, ""
	}

	var month, year int
	if m := monthYearRE.FindStringSubmatch(s); m != nil {
		month, _ = strconv.Atoi(m[1])
		year, _ = strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return raw, ""
		}
	} else {
		parsed, ok := parseReleaseDate(s)
		if !ok {
			return raw, ""
		}
		month = int(parsed.Month())
		year = parsed.Year()
	}

	formatted := fmt.Sprintf("%02d/%d", month, year)
	badge := BadgeFuture
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		badge = BadgeCurrent
	}
	return formatted, badge
}

func parseReleaseDate(s string) (time.Time, bool) {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
