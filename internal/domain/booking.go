package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a committed reservation of a slot on a resource
type Booking struct {
	ID         int64
	PublicID   uuid.UUID // внешний идентификатор, отдается клиентам вместо PK
	ResourceID int64
	ContactID  int64
	StartAt    time.Time // UTC
	EndAt      time.Time // UTC
	Status     BookingStatus

	// Denormalized data for history
	ScheduleName string
	ContactName  string
	ContactEmail *string
	ContactPhone *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the reserved interval as a Slot
func (b *Booking) Slot() Slot {
	return Slot{Start: b.StartAt, End: b.EndAt}
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      int64          // Обязательный параметр
	Date            *time.Time     // Фильтр по дате записи (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show записи
}
