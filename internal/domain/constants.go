package domain

// MaxListedBookings максимальное количество бронирований в ответе списка
const MaxListedBookings = 100

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxCustomerNameLength  = 255
	MaxCustomerPhoneLength = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses фиксированный набор допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
