package book_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на бронирование слота
type Request struct {
	Selector    string  // Селектор ресурса: ID или имя расписания
	SlotStart   string  // Начало слота, ISO 8601 (RFC 3339)
	SlotEnd     string  // Конец слота, ISO 8601 (RFC 3339)
	Timezone    string  // IANA зона вызывающего для представления результата
	CallerName  string  // Имя вызывающего; пустое заменяется на "Unknown"
	CallerEmail *string // Email для поиска контакта и уведомления
	CallerPhone *string // Телефон для поиска контакта
	Notes       *string // Заметки к записи
}

// Response модель ответа о созданном бронировании
type Response struct {
	BookingID         uuid.UUID      // Внешний идентификатор бронирования
	ResourceID        int64          // Ресурс, на котором зафиксирована запись
	ResourceName      string         // Имя расписания
	ResourceDefaulted bool           // true, если селектор не разрешился и подставлен дефолтный ресурс
	ContactID         int64          // Контакт, к которому привязана запись
	FinalStart        time.Time      // Начало зафиксированного слота (UTC)
	FinalEnd          time.Time      // Конец зафиксированного слота (UTC)
	CallerZone        *time.Location // Зона вызывающего для представления результата
}
