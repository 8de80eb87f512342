package create_appointment

import (
	"errors"
	"net/http"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
	createAppointment "github.com/n1kprav/BRB-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartsAt      = "некорректный формат startsAt, ожидается RFC3339"
	msgBarberNotFound       = "барбер не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgBookingsDisabled     = "онлайн-запись недоступна для этого барбера"
	msgSlotTaken            = "выбранное время уже занято"
	msgConcurrencyConflict  = "время было занято параллельной записью, попробуйте еще раз"
	msgNonWorkingDay        = "барбер не работает в этот день"
	msgOutsideWorkingHours  = "запись не помещается в рабочие часы"
	msgTooLateToBook        = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: barber_id=%s, starts_at=%s", req.BarberID, req.StartsAt)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrConcurrencyConflict):
			h.logger.Warn("POST /appointments - Concurrency conflict: barber_id=%s, starts_at=%s", req.BarberID, req.StartsAt)
			handlers.RespondError(w, http.StatusConflict, msgConcurrencyConflict)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: barber_id=%s", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrBookingsDisabled):
			h.logger.Warn("POST /appointments - Bookings disabled: barber_id=%s", req.BarberID)
			handlers.RespondForbidden(w, msgBookingsDisabled)

		case errors.Is(err, createAppointment.ErrNonWorkingDay):
			h.logger.Warn("POST /appointments - Non-working day: barber_id=%s, starts_at=%s", req.BarberID, req.StartsAt)
			handlers.RespondBadRequest(w, msgNonWorkingDay)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: barber_id=%s, starts_at=%s", req.BarberID, req.StartsAt)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: barber_id=%s, starts_at=%s", req.BarberID, req.StartsAt)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: barber_id=%s, error=%v", req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, barber_id=%s", result.ID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
