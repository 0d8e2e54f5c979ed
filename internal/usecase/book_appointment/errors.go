package book_appointment

import "errors"

var (
	// ErrInvalidSlot возвращается, когда границы слота не парсятся,
	// перепутаны местами или слот уже в прошлом
	ErrInvalidSlot = errors.New("book_appointment: invalid slot")

	// ErrSlotNotOffered возвращается в режиме шаблонов, когда запрошенный
	// слот не совпадает точно ни с одним действующим шаблонным кандидатом
	ErrSlotNotOffered = errors.New("book_appointment: slot is not offered")

	// ErrSlotConflict возвращается, когда запрошенный слот пересекается
	// с занятым интервалом ресурса
	ErrSlotConflict = errors.New("book_appointment: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	// Ошибка транзиентная: вызывающий может повторить запрос целиком,
	// внутри одной попытки бронирования повторов нет
	ErrStoreUnavailable = errors.New("book_appointment: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
