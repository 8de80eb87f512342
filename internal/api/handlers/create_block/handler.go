package create_block

import (
	"errors"
	"net/http"

	"github.com/n1kprav/BRB-BookingService/internal/api/handlers"
	"github.com/n1kprav/BRB-BookingService/internal/api/middleware"
	"github.com/n1kprav/BRB-BookingService/internal/service/schedule"
	"github.com/n1kprav/BRB-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "конец блокировки должен быть позже начала"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, ok := middleware.BarberID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlock(r.Context(), barberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /blocks - Invalid time range: barber_id=%s", barberID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid input: barber_id=%s, error=%v", barberID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /blocks - Failed: barber_id=%s, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: block_id=%d, barber_id=%s", result.ID, barberID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
