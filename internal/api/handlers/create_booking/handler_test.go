package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq      *createBooking.Request
	gotIdentity domain.Identity
	result      *domain.BookingDetails
	err         error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request, identity domain.Identity) (*domain.BookingDetails, error) {
	f.gotReq = req
	f.gotIdentity = identity
	return f.result, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const budiBody = `{
	"customer_phone": "+6281111",
	"customer_name": "Budi",
	"branch_id": "b1",
	"service_id": "svc1",
	"booking_date": "2026-01-10",
	"booking_time": "10:00"
}`

func serve(uc *fakeUseCase, identity domain.Identity, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	at := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{result: &domain.BookingDetails{Booking: domain.Booking{
		ID:            "bk-1",
		CustomerPhone: "+6281111",
		CustomerName:  "Budi",
		BranchID:      "b1",
		ServiceID:     "svc1",
		BookingDate:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		BookingTime:   "10:00",
		ServiceTier:   "standard",
		Status:        domain.StatusPending,
		CreatedAt:     at,
		UpdatedAt:     at,
	}}}
	customer := domain.CustomerIdentity{ID: "u1", Phone: "+6281111"}

	rec := serve(uc, customer, budiBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, customer, uc.gotIdentity)
	assert.Equal(t, "Budi", uc.gotReq.CustomerName)
	assert.Equal(t, "2026-01-10", uc.gotReq.BookingDate)

	var body struct {
		Success bool `json:"success"`
		Booking struct {
			ID          string `json:"id"`
			Status      string `json:"status"`
			ServiceTier string `json:"service_tier"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "bk-1", body.Booking.ID)
	assert.Equal(t, "pending", body.Booking.Status)
	assert.Equal(t, "standard", body.Booking.ServiceTier)
}

func TestHandle_Errors(t *testing.T) {
	customer := domain.CustomerIdentity{ID: "u1", Phone: "+6281111"}

	tests := []struct {
		name     string
		identity domain.Identity
		body     string
		err      error
		want     int
	}{
		{"no identity", nil, budiBody, nil, http.StatusUnauthorized},
		{"broken json", customer, `{"customer_phone":`, nil, http.StatusBadRequest},
		{"missing fields", customer, `{}`, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"service not found", customer, budiBody, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"internal", customer, budiBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.identity, tt.body)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
