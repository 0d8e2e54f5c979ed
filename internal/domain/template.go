package domain

import (
	"fmt"
	"time"
)

// SlotTemplate is a recurring weekly availability rule anchored to the
// resource's home timezone. Weekday follows ISO 8601: 1 = Monday, 7 = Sunday.
// Start/End are minute offsets from local midnight of the matching date
type SlotTemplate struct {
	ID           int64
	ScheduleID   int64
	Weekday      int
	StartMinutes int
	EndMinutes   int
	Zone         string
}

// IsValid performs basic sanity checks on the rule
func (t SlotTemplate) IsValid() bool {
	return t.Weekday >= 1 && t.Weekday <= 7 &&
		t.StartMinutes >= 0 && t.EndMinutes > t.StartMinutes &&
		t.EndMinutes <= 24*60
}

// Localize resolves the template against a calendar date into an absolute
// UTC interval. The wall-clock offsets are applied in the template zone
// before conversion, so DST transitions are handled by the zone database
func (t SlotTemplate) Localize(date time.Time) (TimeInterval, error) {
	if !t.IsValid() {
		return TimeInterval{}, fmt.Errorf("invalid slot template id=%d", t.ID)
	}

	loc, err := time.LoadLocation(t.Zone)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("unknown template zone %q: %w", t.Zone, err)
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, t.StartMinutes, 0, 0, loc)
	end := time.Date(year, month, day, 0, t.EndMinutes, 0, 0, loc)

	return NewTimeInterval(start, end)
}

// ISOWeekday returns the ISO 8601 weekday of t: 1 = Monday ... 7 = Sunday
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// TemplateWindow returns the bounding window spanning all templates localized
// for the date. Used by the availability read path to fetch busy intervals
// with a single store query covering every candidate
func TemplateWindow(templates []SlotTemplate, date time.Time) (TimeInterval, error) {
	var window TimeInterval
	found := false

	for _, tpl := range templates {
		iv, err := tpl.Localize(date)
		if err != nil {
			continue
		}
		if !found {
			window = iv
			found = true
			continue
		}
		if iv.Start.Before(window.Start) {
			window.Start = iv.Start
		}
		if iv.End.After(window.End) {
			window.End = iv.End
		}
	}

	if !found {
		return TimeInterval{}, fmt.Errorf("no localizable templates for date %s", date.Format(DateFormat))
	}
	return window, nil
}
