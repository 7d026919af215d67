package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{2,4}))?\b`)
	textualDateRe = regexp.MustCompile(`\b(\d{1,2})\s+de\s+([a-zç]+)(?:\s+de\s+(\d{2,4}))?`)
)

// monthNames resolves full pt-BR month names and their three-letter
// abbreviations.
var monthNames = map[string]time.Month{
	"janeiro": time.January, "jan": time.January,
	"fevereiro": time.February, "fev": time.February,
	"março": time.March, "marco": time.March, "mar": time.March,
	"abril": time.April, "abr": time.April,
	"maio": time.May, "mai": time.May,
	"junho": time.June, "jun": time.June,
	"julho": time.July, "jul": time.July,
	"agosto": time.August, "ago": time.August,
	"setembro": time.September, "set": time.September,
	"outubro": time.October, "out": time.October,
	"novembro": time.November, "nov": time.November,
	"dezembro": time.December, "dez": time.December,
}

// ResolveDate extracts a calendar date from normalized text, defaulting to
// today. Patterns are tried in order: numeric ("10/05", "10-05-2026",
// "10.05.26"), textual ("10 de maio [de 2026]"), then the relative keywords
// hoje/ontem/amanhã. Invalid components (day 32, month 13) make the pattern
// fall through rather than fail. A literal "hoje" anywhere in the text
// overrides whatever an earlier pattern matched: an explicit recency cue
// beats a possibly coincidental number.
func ResolveDate(text string, now time.Time) time.Time {
	today := midnight(now)

	date, ok := resolveExplicit(text, today)
	if !ok {
		date, ok = resolveRelative(text, today)
	}
	if strings.Contains(text, "hoje") {
		return today
	}
	if ok {
		return date
	}
	return today
}

func resolveExplicit(text string, today time.Time) (time.Time, bool) {
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := resolveYear(m[3], today)
		if d, ok := buildDate(year, month, day, today.Location()); ok {
			return d, true
		}
	}

	if m := textualDateRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthNames[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			year := resolveYear(m[3], today)
			if d, ok := buildDate(year, int(month), day, today.Location()); ok {
				return d, true
			}
		}
	}

	return time.Time{}, false
}

func resolveRelative(text string, today time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(text, "hoje"):
		return today, true
	case strings.Contains(text, "ontem"):
		return today.AddDate(0, 0, -1), true
	case strings.Contains(text, "amanhã"), strings.Contains(text, "amanha"):
		return today.AddDate(0, 0, 1), true
	}
	return time.Time{}, false
}

// resolveYear expands "26" to 2026 and defaults a missing year to the
// current one.
func resolveYear(raw string, today time.Time) int {
	if raw == "" {
		return today.Year()
	}
	y, _ := strconv.Atoi(raw)
	if len(raw) == 2 {
		y += 2000
	}
	return y
}

func buildDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes 31/04 to 01/05; treat that as invalid too.
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
