package get_barber_appointments

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
	"github.com/n1kprav/BRB-BookingService/internal/api/middleware"
	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный формат ID барбера, ожидается UUID"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAccessDenied    = "доступ запрещен"
	msgUnauthorized    = "требуется аутентификация"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/appointments?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authBarberID, ok := middleware.BarberID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	barberID, err := uuid.Parse(mux.Vars(r)["barberId"])
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/appointments - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	// Барбер видит только собственный календарь
	if barberID != authBarberID {
		h.logger.Warn("GET /barbers/{id}/appointments - Access denied: barber_id=%s, auth=%s", barberID, authBarberID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	// Без параметра date показываем сегодняшний день
	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.ParseInLocation(domain.DateFormat, raw, time.UTC)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/appointments - Invalid date: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.GetBarberAppointments(r.Context(), barberID, date)
	if err != nil {
		h.logger.Error("GET /barbers/{id}/appointments - Failed: barber_id=%s, error=%v", barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbers/{id}/appointments - %d appointments returned: barber_id=%s", result.Total, barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
