package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// quantityMatcher extracts one quantity from a normalized fragment, or reports a miss.
type quantityMatcher func(text string) (int, bool)

var (
	colonRe   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	hoursRe   = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*(?:horas|hora|hrs|hr|h)\b(?:\s*(\d{1,2})\s*mins?\b)?`)
	minutesRe = regexp.MustCompile(`\b(\d+)\s*mins?\b`)
	secondsRe = regexp.MustCompile(`\b(\d+)\s*(?:seg|sec|s)\b`)

	kmRe     = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*km\b`)
	metersRe = regexp.MustCompile(`\b(\d+)\s*(metros|metro|mts|mt|m)\b`)
)

// Ordered: first hit wins.
var secondsMatchers = []quantityMatcher{
	matchColon,
	matchHours,
	matchMinutes,
	matchSeconds,
}

var metersMatchers = []quantityMatcher{
	matchKilometers,
	matchMeters,
}

// ParseSeconds returns the first duration found in text, in seconds.
func ParseSeconds(text string) (int, bool) {
	return firstMatch(secondsMatchers, text)
}

// ParseMeters returns the first distance found in text, in meters.
func ParseMeters(text string) (int, bool) {
	return firstMatch(metersMatchers, text)
}

func firstMatch(matchers []quantityMatcher, text string) (int, bool) {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v, true
		}
	}
	return 0, false
}

// matchColon reads "m:ss", so "1:30" is 90 seconds.
func matchColon(text string) (int, bool) {
	m := colonRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	lead, _ := strconv.Atoi(m[1])
	rest, _ := strconv.Atoi(m[2])
	if rest >= 60 {
		return 0, false
	}
	return lead*60 + rest, true
}

func matchHours(text string) (int, bool) {
	m := hoursRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	h, ok := parseDecimal(m[1])
	if !ok {
		return 0, false
	}
	secs := int(math.Round(h * 3600))
	if m[2] != "" {
		mins, _ := strconv.Atoi(m[2])
		secs += mins * 60
	}
	return secs, true
}

func matchMinutes(text string) (int, bool) {
	m := minutesRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n * 60, true
}

func matchSeconds(text string) (int, bool) {
	m := secondsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func matchKilometers(text string) (int, bool) {
	m := kmRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	km, ok := parseDecimal(m[1])
	if !ok {
		return 0, false
	}
	return int(math.Round(km * 1000)), true
}

// matchMeters skips a bare "m" that is really the start of a minute marker.
func matchMeters(text string) (int, bool) {
	for _, loc := range metersRe.FindAllStringSubmatchIndex(text, -1) {
		unit := text[loc[4]:loc[5]]
		if unit == "m" && looksLikeMinute(text[loc[5]:]) {
			continue
		}
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

func looksLikeMinute(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	return strings.HasPrefix(rest, "in") || strings.HasPrefix(rest, "1n") || strings.HasPrefix(rest, "min")
}

// parseDecimal accepts both "4.2" and "4,2".
func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
