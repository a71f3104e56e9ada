package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 string  `json:"id"`
	CustomerPhone      string  `json:"customer_phone"`
	CustomerName       string  `json:"customer_name"`
	CustomerID         *string `json:"customer_id"`
	BranchID           string  `json:"branch_id"`
	ServiceID          string  `json:"service_id"`
	CapsterID          *string `json:"capster_id"`
	RequestedCapsterID *string `json:"requested_capster_id"`
	BookingDate        string  `json:"booking_date"` // "2026-01-10"
	BookingTime        string  `json:"booking_time"` // "10:00"
	ServiceTier        string  `json:"service_tier"`
	Notes              *string `json:"notes"`
	Status             string  `json:"status"`

	// Денормализованные данные
	ServiceName     *string          `json:"service_name,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	CapsterName     *string          `json:"capster_name,omitempty"`
	BranchName      *string          `json:"branch_name,omitempty"`
	BranchAddress   *string          `json:"address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBookingDetails конвертирует domain модель в DTO
func FromDomainBookingDetails(b *domain.BookingDetails) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		CustomerPhone:      b.CustomerPhone,
		CustomerName:       b.CustomerName,
		CustomerID:         b.CustomerID,
		BranchID:           b.BranchID,
		ServiceID:          b.ServiceID,
		CapsterID:          b.CapsterID,
		RequestedCapsterID: b.RequestedCapsterID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		BookingTime:        b.BookingTime.String(),
		ServiceTier:        b.ServiceTier,
		Notes:              b.Notes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		Price:              b.ServicePrice,
		DurationMinutes:    b.DurationMinutes,
		CapsterName:        b.CapsterName,
		BranchName:         b.BranchName,
		BranchAddress:      b.BranchAddress,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
// Пустой список сериализуется как [], а не null
func FromDomainBookingList(bookings []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBookingDetails(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
