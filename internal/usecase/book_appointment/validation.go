package book_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// defaultCallerName имя контакта, когда вызывающий не представился
const defaultCallerName = "Unknown"

// parseSlot парсит и валидирует границы запрошенного слота
// Границы принимаются в ISO 8601 с любым смещением и нормализуются в UTC
func parseSlot(req *Request, now time.Time) (domain.TimeInterval, error) {
	if req.SlotStart == "" || req.SlotEnd == "" {
		return domain.TimeInterval{}, fmt.Errorf("%w: slotStart and slotEnd are required", ErrInvalidSlot)
	}

	start, err := time.Parse(time.RFC3339, req.SlotStart)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: failed to parse slotStart: %v", ErrInvalidSlot, err)
	}

	end, err := time.Parse(time.RFC3339, req.SlotEnd)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: failed to parse slotEnd: %v", ErrInvalidSlot, err)
	}

	slot, err := domain.NewTimeInterval(start, end)
	if err != nil {
		return domain.TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	if !slot.End.After(now) {
		return domain.TimeInterval{}, fmt.Errorf("%w: slot is in the past", ErrInvalidSlot)
	}

	return slot, nil
}

// validateRequest валидирует остальные входные данные запроса
func validateRequest(req *Request) error {
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// callerName возвращает имя вызывающего с дефолтом для анонимных запросов
func callerName(req *Request) string {
	if req.CallerName == "" {
		return defaultCallerName
	}
	return req.CallerName
}

// resolveLocation разрешает зону вызывающего с деградацией в UTC
func resolveLocation(tz string) (*time.Location, bool) {
	if tz == "" {
		return time.UTC, false
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, true
	}
	return loc, false
}
