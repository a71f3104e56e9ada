package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/authz"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.BookingDetails, error)
}

// Directory интерфейс справочников
type Directory interface {
	GetActiveService(ctx context.Context, serviceID string) (*domain.Service, error)
}

// Policy политика доступа
type Policy interface {
	Evaluate(subject authz.Subject, action authz.Action, booking *domain.Booking) authz.Result
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	BookingCreated(tier string)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	NewID() (string, error)
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
