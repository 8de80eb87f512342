package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
	"github.com/n1kprav/BRB-BookingService/internal/domain"
	getAvailability "github.com/n1kprav/BRB-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidBarberID  = "некорректный формат ID барбера, ожидается UUID"
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimezone  = "неизвестный часовой пояс"
	msgBarberNotFound   = "барбер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgBookingsDisabled = "онлайн-запись недоступна для этого барбера"
	msgDateInPast       = "дата не может быть в прошлом"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/availability?serviceId=&date=&tz=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := uuid.Parse(vars["barberId"])
	if err != nil {
		h.logger.Warn("GET /availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /availability - Invalid service ID: %q", r.URL.Query().Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), time.UTC)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Часовой пояс влияет только на форматирование меток слотов
	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid timezone: %q", tz)
			handlers.RespondBadRequest(w, msgInvalidTimezone)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
		Location:  loc,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrBarberNotFound):
			h.logger.Warn("GET /availability - Barber not found: barber_id=%s", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrBookingsDisabled):
			h.logger.Warn("GET /availability - Bookings disabled: barber_id=%s", barberID)
			handlers.RespondForbidden(w, msgBookingsDisabled)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Date in past: barber_id=%s", barberID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /availability - Failed: barber_id=%s, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots returned: barber_id=%s, service_id=%d",
		len(result.Slots), barberID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
