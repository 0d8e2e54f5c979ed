package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// MaxSlotsPerResponse предел количества слотов в ответе о доступности
// Список обрезается с сохранением хронологического порядка, не сэмплируется
const MaxSlotsPerResponse = 10

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих интервал в календаре
// Используется для фильтрации при вычислении занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих интервал в календаре
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
