package close_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
	"github.com/n1kprav/BRB-BookingService/internal/api/middleware"
	"github.com/n1kprav/BRB-BookingService/internal/domain"
	closeDay "github.com/n1kprav/BRB-BookingService/internal/usecase/close_day"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast          = "нельзя закрыть день в прошлом"
	msgConcurrencyConflict = "день изменяется параллельной операцией, попробуйте еще раз"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase CloseDayUseCase
	logger  Logger
}

func NewHandler(useCase CloseDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocks/close-day
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, ok := middleware.BarberID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CloseDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks/close-day - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.UTC)
	if err != nil {
		h.logger.Warn("POST /blocks/close-day - Invalid date: %q", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &closeDay.Request{
		BarberID: barberID,
		Date:     date,
		Reason:   req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, closeDay.ErrInvalidDate):
			h.logger.Warn("POST /blocks/close-day - Date in past: barber_id=%s, date=%s", barberID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, closeDay.ErrConcurrencyConflict):
			h.logger.Warn("POST /blocks/close-day - Concurrency conflict: barber_id=%s, date=%s", barberID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgConcurrencyConflict)

		case errors.Is(err, closeDay.ErrInvalidInput):
			h.logger.Warn("POST /blocks/close-day - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /blocks/close-day - Failed: barber_id=%s, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks/close-day - Day closed: barber_id=%s, date=%s, cancelled=%d",
		barberID, req.Date, result.CancelledCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
