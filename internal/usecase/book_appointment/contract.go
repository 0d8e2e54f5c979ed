package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
)

// EventRepository интерфейс хранилища занятых интервалов
type EventRepository interface {
	QueryOverlapping(ctx context.Context, resourceID int64, window domain.TimeInterval) ([]domain.TimeInterval, error)
	Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ScheduleRepository интерфейс хранилища расписаний и шаблонов слотов
type ScheduleRepository interface {
	Resolve(ctx context.Context, selector string) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	TemplatesFor(ctx context.Context, scheduleID int64, weekday int) ([]domain.SlotTemplate, error)
}

// ContactRepository интерфейс репозитория контактов
type ContactRepository interface {
	// LookupOrCreate разрешает контакт по email, затем по телефону,
	// затем создает новый
	LookupOrCreate(ctx context.Context, name string, email, phone *string) (*domain.Contact, error)
}

// Notifier интерфейс отправки уведомлений
// Отправка best-effort: ошибка логируется и не влияет на результат
type Notifier interface {
	SendBookingConfirmed(n mailer.BookingNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
