package create_booking

import (
	"context"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request, identity domain.Identity) (*domain.BookingDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
