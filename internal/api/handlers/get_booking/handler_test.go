package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/bookings/models"
)

type fakeService struct {
	gotID string
	resp  *models.BookingResponse
	err   error
}

func (f *fakeService) GetByID(_ context.Context, id string, _ domain.Identity) (*models.BookingResponse, error) {
	f.gotID = id
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, identity domain.Identity) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/bk-1", nil)
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{ID: "bk-1", Status: "confirmed"}}

	rec := serve(svc, domain.AdminIdentity{ID: "a1", BranchID: "b1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bk-1", svc.gotID)

	var body BookingEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Booking)
	assert.Equal(t, "confirmed", body.Booking.Status)
}

func TestHandle_Errors(t *testing.T) {
	admin := domain.AdminIdentity{ID: "a1", BranchID: "b1"}

	tests := []struct {
		name     string
		identity domain.Identity
		err      error
		want     int
	}{
		{"no identity", nil, nil, http.StatusUnauthorized},
		{"not found", admin, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"out of scope", admin, bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", admin, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.identity)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
