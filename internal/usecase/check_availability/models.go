package check_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Режимы вычисления доступности
const (
	ModeFixed    = "fixed"    // нарезка свободного времени по длительности
	ModeTemplate = "template" // фиксированные слоты из недельных шаблонов
)

// Request модель запроса на проверку доступности
type Request struct {
	Selector        string // Селектор ресурса: ID или имя расписания
	Date            string // Дата в формате YYYY-MM-DD
	DurationMinutes int    // Длительность слота; в режиме шаблонов носит справочный характер
	Window          string // Именованное окно дня: morning/afternoon/evening/any
	Timezone        string // IANA зона вызывающего; неизвестная зона деградирует в UTC
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ResourceID        int64          // ID ресурса, по которому считалась доступность
	ResourceName      string         // Имя расписания
	ResourceDefaulted bool           // true, если селектор не разрешился и подставлен дефолтный ресурс
	Mode              string         // Режим вычисления: fixed или template
	Date              time.Time      // Запрошенная дата
	Slots             []domain.Slot  // Слоты в UTC, хронологически, не более 10
	CallerZone        *time.Location // Зона вызывающего для представления результата
}
