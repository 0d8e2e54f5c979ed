package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда SendGrid отклонил или не принял письмо
	// Вызывающий код трактует ошибку как best-effort: логирует и продолжает
	ErrSendFailed = errors.New("mailer client: failed to send email")

	// ErrDisabled возвращается, когда отправка писем выключена конфигурацией
	ErrDisabled = errors.New("mailer client: notifications disabled")
)
