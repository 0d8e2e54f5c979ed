package domain

import "time"

// Contact is the caller identity a booking is attributed to.
// Разрешение контакта (поиск по email, затем по телефону, затем создание)
// выполняется до резервирования слота и не входит в критическую секцию
type Contact struct {
	ID        int64
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}
