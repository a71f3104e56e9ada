package create_booking

import (
	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerPhone string  // Телефон клиента (ключ поиска бронирований)
	CustomerName  string  // Имя клиента
	BranchID      string  // ID филиала
	ServiceID     string  // ID услуги каталога
	CapsterID     *string // ID мастера (опционально, nil = любой свободный)
	BookingDate   string  // Дата визита "2026-01-10"
	BookingTime   string  // Время визита "10:00"
	Notes         *string // Дополнительные заметки (опционально)
}

// UUIDv7Generator генерирует UUIDv7: упорядочен по времени, случайная часть
// исключает коллизии при параллельном создании
type UUIDv7Generator struct{}

// NewID возвращает новый идентификатор
func (UUIDv7Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
