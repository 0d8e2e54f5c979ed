package check_availability

import "errors"

var (
	// ErrInvalidDateFormat возвращается, когда дата не парсится как YYYY-MM-DD
	ErrInvalidDateFormat = errors.New("check_availability: invalid date format")

	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("check_availability: invalid duration")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	// Ошибка транзиентная: вызывающий может повторить запрос
	ErrStoreUnavailable = errors.New("check_availability: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
