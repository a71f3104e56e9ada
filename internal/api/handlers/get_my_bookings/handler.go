package get_my_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBookingService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/mine
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/mine - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.ListForIdentity(r.Context(), identity)
	if err != nil {
		h.logger.Error("GET /bookings/mine - Failed to get bookings: user_id=%s, role=%s, error=%v",
			identity.AccountID(), identity.Role(), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/mine - Retrieved %d bookings: user_id=%s, role=%s",
		len(result.Bookings), identity.AccountID(), identity.Role())
	handlers.RespondJSON(w, http.StatusOK, result)
}
