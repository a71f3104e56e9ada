package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/authz"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*domain.BookingDetails, error)
	FindByPhone(ctx context.Context, phone string, limit int) ([]*domain.BookingDetails, error)
	FindByCapster(ctx context.Context, capsterID string, limit int) ([]*domain.BookingDetails, error)
	FindByBranch(ctx context.Context, branchID string, limit int) ([]*domain.BookingDetails, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error
}

// Directory интерфейс справочника мастеров
type Directory interface {
	GetCapsterByUserID(ctx context.Context, userID string) (*domain.Capster, error)
}

// Policy политика доступа
type Policy interface {
	Evaluate(subject authz.Subject, action authz.Action, booking *domain.Booking) authz.Result
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	BookingStatusChanged(status string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
