package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// IsValid returns true if the status belongs to the fixed enumeration
func (s BookingStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Booking represents a reservation of a capster's time slot at a branch
type Booking struct {
	ID            string
	CustomerPhone string  // ключ клиента, по нему ищутся бронирования даже без аккаунта
	CustomerName  string
	CustomerID    *string // заполняется только если бронирование создал клиент
	BranchID      string
	ServiceID     string
	CapsterID     *string // nil = любой свободный мастер
	// RequestedCapsterID мастер, которого клиент выбрал при создании
	RequestedCapsterID *string
	BookingDate        time.Time
	BookingTime        types.TimeString
	ServiceTier        string // снимок категории услуги на момент создания
	Notes              *string
	Status             BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsOwnedBy returns true if the booking is linked to the given customer account
func (b *Booking) IsOwnedBy(accountID string) bool {
	return b.CustomerID != nil && accountID != "" && *b.CustomerID == accountID
}

// IsAssignedTo returns true if the booking is assigned to the given capster
func (b *Booking) IsAssignedTo(capsterID string) bool {
	return b.CapsterID != nil && capsterID != "" && *b.CapsterID == capsterID
}

// BookingDetails бронирование вместе с денормализованными полями для отображения
// Поля заполняются JOIN'ом при чтении и не хранятся в таблице bookings
type BookingDetails struct {
	Booking

	ServiceName     *string
	ServicePrice    *decimal.Decimal
	DurationMinutes *int
	CapsterName     *string
	BranchName      *string
	BranchAddress   *string
}
