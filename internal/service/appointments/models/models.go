package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// Request модели

// CancelAppointmentRequest запрос на отмену бронирования
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ListResourceAppointmentsRequest запрос на получение бронирований ресурса
type ListResourceAppointmentsRequest struct {
	ResourceID      int64   `json:"resourceId"`
	Date            *string `json:"date,omitempty"`            // Фильтр по дате "2026-01-15" (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListResourceAppointmentsRequest) ToDomainFilter() (domain.ResourceBookingsFilter, error) {
	filter := domain.ResourceBookingsFilter{
		ResourceID:      r.ResourceID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Date != nil {
		date, err := time.ParseInLocation(domain.DateFormat, *r.Date, time.UTC)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными бронирования
type AppointmentResponse struct {
	BookingID  string `json:"bookingId"` // Публичный UUID
	ResourceID int64  `json:"resourceId"`
	StartAt    string `json:"startAt"` // ISO 8601, UTC
	EndAt      string `json:"endAt"`   // ISO 8601, UTC
	Status     string `json:"status"`

	// Денормализованные данные
	ScheduleName string  `json:"scheduleName"`
	ContactName  string  `json:"contactName"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком бронирований
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *AppointmentResponse {
	if b == nil {
		return nil
	}

	resp := &AppointmentResponse{
		BookingID:          b.PublicID.String(),
		ResourceID:         b.ResourceID,
		StartAt:            b.StartAt.UTC().Format(time.RFC3339),
		EndAt:              b.EndAt.UTC().Format(time.RFC3339),
		Status:             string(b.Status),
		ScheduleName:       b.ScheduleName,
		ContactName:        b.ContactName,
		ContactEmail:       b.ContactEmail,
		ContactPhone:       b.ContactPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Appointments = append(resp.Appointments, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
