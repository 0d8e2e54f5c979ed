package domain

import "time"

// CalendarEvent is one busy interval on a resource's calendar. Events carry
// the booking that produced them (when created through this service);
// externally synced events have no booking reference
type CalendarEvent struct {
	ID         int64
	ResourceID int64
	BookingID  *int64
	Title      string
	StartAt    time.Time // UTC
	EndAt      time.Time // UTC
	CreatedAt  time.Time
}

// Interval returns the busy interval of the event
func (e *CalendarEvent) Interval() TimeInterval {
	return TimeInterval{Start: e.StartAt, End: e.EndAt}
}
