package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/types"
)

// draft проверенные и нормализованные данные запроса
type draft struct {
	customerPhone string
	customerName  string
	branchID      string
	serviceID     string
	capsterID     *string
	bookingDate   time.Time
	bookingTime   types.TimeString
	notes         *string
}

// validateRequest проверяет наличие обязательных полей и их формат
// Поля из одних пробелов считаются отсутствующими
func validateRequest(req *Request) (*draft, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	d := &draft{
		customerPhone: strings.TrimSpace(req.CustomerPhone),
		customerName:  strings.TrimSpace(req.CustomerName),
		branchID:      strings.TrimSpace(req.BranchID),
		serviceID:     strings.TrimSpace(req.ServiceID),
		capsterID:     optional(req.CapsterID),
		notes:         optional(req.Notes),
	}
	bookingDate := strings.TrimSpace(req.BookingDate)
	bookingTime := strings.TrimSpace(req.BookingTime)

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"customer_phone", d.customerPhone},
		{"customer_name", d.customerName},
		{"branch_id", d.branchID},
		{"service_id", d.serviceID},
		{"booking_date", bookingDate},
		{"booking_time", bookingTime},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	date, err := time.Parse(domain.DateFormat, bookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: booking_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	d.bookingDate = date

	t, err := types.NewTimeStringFromString(bookingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: booking_time must be HH:MM", ErrInvalidInput)
	}
	d.bookingTime = t

	if utf8.RuneCountInString(d.customerPhone) > domain.MaxCustomerPhoneLength {
		return nil, fmt.Errorf("%w: customer_phone is longer than %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}
	if utf8.RuneCountInString(d.customerName) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customer_name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if d.notes != nil && utf8.RuneCountInString(*d.notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return d, nil
}

// optional пустая строка для необязательного поля равнозначна его отсутствию
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
