package cancel_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Cancel(ctx context.Context, id int64, barberID uuid.UUID, reason string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
