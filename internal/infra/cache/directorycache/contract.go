package directorycache

import (
	"context"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// Directory источник данных справочников
type Directory interface {
	GetActiveService(ctx context.Context, serviceID string) (*domain.Service, error)
	GetCapsterByUserID(ctx context.Context, userID string) (*domain.Capster, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
