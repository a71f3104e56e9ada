package create_booking

import (
	"github.com/m04kA/SMC-BarberBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerPhone string  `json:"customer_phone"`
	CustomerName  string  `json:"customer_name"`
	BranchID      string  `json:"branch_id"`
	ServiceID     string  `json:"service_id"`
	CapsterID     *string `json:"capster_id,omitempty"`
	BookingDate   string  `json:"booking_date"` // "2026-01-10"
	BookingTime   string  `json:"booking_time"` // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Проверка полей выполняется в use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CustomerPhone: r.CustomerPhone,
		CustomerName:  r.CustomerName,
		BranchID:      r.BranchID,
		ServiceID:     r.ServiceID,
		CapsterID:     r.CapsterID,
		BookingDate:   r.BookingDate,
		BookingTime:   r.BookingTime,
		Notes:         r.Notes,
	}
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}
