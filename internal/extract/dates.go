package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed years must fall strictly inside this window. It rejects
// recognition artifacts like a misread "2003" or a stray "9999".
const (
	minPlausibleYear = 2020
	maxPlausibleYear = 2035
)

// One combined pattern with the ISO alternative first, so "2022-06-30" is
// consumed whole and its tail "22-06-30" never resurfaces as a day-first
// candidate.
var (
	reDate    = regexp.MustCompile(`\d{4}[./-]\d{1,2}[./-]\d{1,2}|\d{1,2}[./-]\d{1,2}[./-]\d{2,4}`)
	reDateSep = regexp.MustCompile(`[./-]`)
)

// ResolveExpiry scans text for date-shaped substrings, parses them with
// day-first precedence, and returns the latest date inside the plausible
// validity window. A certificate carries an issue date and an expiry date;
// the expiry is always the later one, so the maximum is a robust proxy
// without labeling which date is which. ok is false when no candidate
// survives the window.
func ResolveExpiry(text string) (time.Time, bool) {
	var candidates []time.Time

	for _, m := range reDate.FindAllString(text, -1) {
		if t, ok := parseDate(m); ok {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return time.Time{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.After(best) {
			best = c
		}
	}
	return best, true
}

// parseDate dispatches on the leading component: a 4-digit head reads as
// Y-M-D, anything else as D-M-Y with a swap to M-D-Y only when the
// day-first reading is impossible (mirrors dateutil's dayfirst behavior).
func parseDate(s string) (time.Time, bool) {
	parts := reDateSep.Split(s, -1)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	a, err1 := strconv.Atoi(parts[0])
	b, err2 := strconv.Atoi(parts[1])
	c, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	if len(parts[0]) == 4 {
		return makeDate(a, b, c)
	}

	day, month, year := a, b, c
	if year < 100 {
		year += 2000
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return makeDate(year, month, day)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if year <= minPlausibleYear || year >= maxPlausibleYear {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 into March; reject anything that moved.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
