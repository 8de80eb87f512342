package get_barber_appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetBarberAppointments(ctx context.Context, barberID uuid.UUID, date time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
