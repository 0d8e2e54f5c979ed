package domain

import (
	"strings"
	"time"
)

// WindowKeyword is a named part of the working day used to bound an
// availability request when the resource has no slot templates
type WindowKeyword string

const (
	WindowMorning   WindowKeyword = "morning"
	WindowAfternoon WindowKeyword = "afternoon"
	WindowEvening   WindowKeyword = "evening"
	WindowAny       WindowKeyword = "any"
)

// Границы окон в минутах от локальной полуночи
var windowBounds = map[WindowKeyword][2]int{
	WindowMorning:   {9 * 60, 12 * 60},
	WindowAfternoon: {13 * 60, 17 * 60},
	WindowEvening:   {17 * 60, 21 * 60},
	WindowAny:       {9 * 60, 17 * 60},
}

// ParseWindowKeyword parses a window name; anything unrecognized (including
// the empty string) falls back to "any", matching the default working day
func ParseWindowKeyword(s string) WindowKeyword {
	kw := WindowKeyword(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := windowBounds[kw]; ok {
		return kw
	}
	return WindowAny
}

// WorkingWindow localizes the keyword's wall-clock bounds on the given date
// in loc and returns the resulting UTC interval
func WorkingWindow(date time.Time, keyword WindowKeyword, loc *time.Location) TimeInterval {
	bounds, ok := windowBounds[keyword]
	if !ok {
		bounds = windowBounds[WindowAny]
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, bounds[0], 0, 0, loc)
	end := time.Date(year, month, day, 0, bounds[1], 0, 0, loc)

	return TimeInterval{Start: start.UTC(), End: end.UTC()}
}
