package domain

import (
	"fmt"
	"sort"
	"time"
)

// TimeInterval represents a half-open time interval [Start, End).
// Both bounds are kept in UTC; the interval is valid only when Start < End.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds a UTC-normalized interval and validates its bounds
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	iv := TimeInterval{Start: start.UTC(), End: end.UTC()}
	if !iv.IsValid() {
		return TimeInterval{}, fmt.Errorf("invalid interval: start %s is not before end %s", start, end)
	}
	return iv, nil
}

// IsValid returns true if the interval has positive length
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the interval length
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any time.
// Touching bounds (one ends exactly where the other starts) do not overlap
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Equal reports whether both bounds match as instants
func (i TimeInterval) Equal(other TimeInterval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// MergeIntervals coalesces an unordered set of intervals into the minimal
// sorted sequence of non-overlapping, non-adjacent intervals covering the
// same union of time. The input is not modified. Invalid (zero-length or
// inverted) intervals are dropped.
//
// Сортировка по Start (при равенстве — по End) делает результат
// детерминированным при любом порядке входа
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	valid := make([]TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsValid() {
			valid = append(valid, TimeInterval{Start: iv.Start.UTC(), End: iv.End.UTC()})
		}
	}
	if len(valid) == 0 {
		return []TimeInterval{}
	}

	sort.Slice(valid, func(a, b int) bool {
		if valid[a].Start.Equal(valid[b].Start) {
			return valid[a].End.Before(valid[b].End)
		}
		return valid[a].Start.Before(valid[b].Start)
	})

	merged := make([]TimeInterval, 0, len(valid))
	current := valid[0]

	for _, next := range valid[1:] {
		// Смежные интервалы (next.Start == current.End) тоже склеиваются
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

// FreeIntervals subtracts a merged busy sequence from the window and returns
// the ordered free intervals clipped to the window.
//
// The busy sequence MUST already be sorted and non-overlapping (the output
// of MergeIntervals); this function does not re-merge. Busy intervals fully
// or partially outside the window are clipped implicitly by the cursor walk
func FreeIntervals(window TimeInterval, mergedBusy []TimeInterval) []TimeInterval {
	free := make([]TimeInterval, 0, len(mergedBusy)+1)

	if !window.IsValid() {
		return free
	}

	cursor := window.Start
	for _, busy := range mergedBusy {
		if busy.Start.After(cursor) {
			gapEnd := busy.Start
			if gapEnd.After(window.End) {
				gapEnd = window.End
			}
			if cursor.Before(gapEnd) {
				free = append(free, TimeInterval{Start: cursor, End: gapEnd})
			}
		}
		if busy.End.After(cursor) {
			cursor = busy.End
		}
		if !cursor.Before(window.End) {
			return free
		}
	}

	if cursor.Before(window.End) {
		free = append(free, TimeInterval{Start: cursor, End: window.End})
	}

	return free
}
