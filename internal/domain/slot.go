package domain

import (
	"sort"
	"time"
)

// Slot represents a concrete bookable time interval, always in UTC
type Slot struct {
	Start time.Time
	End   time.Time
}

// Interval returns the slot as a TimeInterval
func (s Slot) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}

// SliceSlots cuts each free interval into consecutive slots of the requested
// duration, starting at the interval start. A trailing remainder shorter than
// the duration is never emitted. Free intervals are expected in chronological
// order, so the result is chronological as well
func SliceSlots(free []TimeInterval, duration time.Duration) []Slot {
	if duration <= 0 {
		return []Slot{}
	}

	slots := make([]Slot, 0)
	for _, iv := range free {
		for start := iv.Start; !start.Add(duration).After(iv.End); start = start.Add(duration) {
			slots = append(slots, Slot{Start: start, End: start.Add(duration)})
		}
	}
	return slots
}

// TemplateSlots evaluates each slot template independently against the
// requested date: the template is localized to an absolute UTC interval and
// included iff it overlaps none of the merged busy intervals. Templates are
// never sliced or merged with each other; a partially busy template slot is
// excluded entirely.
//
// Шаблоны с неразрешимой таймзоной пропускаются: один битый шаблон не должен
// ронять весь ответ
func TemplateSlots(templates []SlotTemplate, date time.Time, mergedBusy []TimeInterval) []Slot {
	slots := make([]Slot, 0, len(templates))

	for _, tpl := range templates {
		iv, err := tpl.Localize(date)
		if err != nil {
			continue
		}
		if overlapsAny(iv, mergedBusy) {
			continue
		}
		slots = append(slots, Slot{Start: iv.Start, End: iv.End})
	}

	sort.Slice(slots, func(a, b int) bool {
		return slots[a].Start.Before(slots[b].Start)
	})

	return slots
}

// CapSlots truncates the slot list to MaxSlotsPerResponse, preserving order
func CapSlots(slots []Slot) []Slot {
	if len(slots) > MaxSlotsPerResponse {
		return slots[:MaxSlotsPerResponse]
	}
	return slots
}

func overlapsAny(iv TimeInterval, busy []TimeInterval) bool {
	for _, b := range busy {
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}
