package check_availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EventRepository интерфейс хранилища занятых интервалов
type EventRepository interface {
	// QueryOverlapping возвращает занятые интервалы ресурса,
	// пересекающиеся с окном (и только их)
	QueryOverlapping(ctx context.Context, resourceID int64, window domain.TimeInterval) ([]domain.TimeInterval, error)
}

// ScheduleRepository интерфейс хранилища расписаний и шаблонов слотов
type ScheduleRepository interface {
	// Resolve разрешает селектор (ID или имя) в расписание
	Resolve(ctx context.Context, selector string) (*domain.Schedule, error)
	// GetByID получает расписание по ID (используется для дефолтного ресурса)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	// TemplatesFor получает шаблоны слотов на день недели (ISO 8601)
	TemplatesFor(ctx context.Context, scheduleID int64, weekday int) ([]domain.SlotTemplate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
