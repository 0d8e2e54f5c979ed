package domain

import "time"

// Schedule is a bookable resource: one staff calendar with a home timezone.
// When the schedule carries slot templates for a weekday, availability for
// dates on that weekday is computed in template mode; otherwise free time is
// sliced by the requested duration
type Schedule struct {
	ID        int64
	Name      string
	StaffName string
	Timezone  string // IANA zone, authoritative for template math
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the schedule's home timezone.
// Неразрешимая зона деградирует в UTC: чтение доступности должно
// деградировать, а не ломаться
func (s *Schedule) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
