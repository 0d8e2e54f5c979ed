package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Опущенная длительность заменяется дефолтной. Длительность проверяется
// в обоих режимах, хотя в режиме шаблонов она носит справочный характер:
// ширина шаблона авторитетна
func validateRequest(req *Request) error {
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDateFormat)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must be positive, got %d", ErrInvalidDuration, req.DurationMinutes)
	}
	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}

// parseDate парсит календарную дату запроса
func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDateFormat, s)
	}
	return date, nil
}

// resolveLocation разрешает зону вызывающего
// Неизвестная зона деградирует в UTC: доступность должна деградировать,
// а не ломаться. Признак деградации возвращается для логирования
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
