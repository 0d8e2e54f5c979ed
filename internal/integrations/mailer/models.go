package mailer

import "time"

// BookingNotification данные для письма о бронировании
type BookingNotification struct {
	RecipientName  string
	RecipientEmail string
	ScheduleName   string
	BookingID      string
	StartAt        time.Time
	EndAt          time.Time
	Zone           *time.Location // зона вызывающего для форматирования времени
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
