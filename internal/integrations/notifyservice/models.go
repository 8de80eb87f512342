package notifyservice

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentCreatedEvent событие о новой записи
type AppointmentCreatedEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	BarberID      uuid.UUID `json:"barber_id"`
	ClientID      int64     `json:"client_id"`
	ServiceName   string    `json:"service_name"`
	StartsAt      time.Time `json:"starts_at"`
}

// AppointmentsCancelledEvent событие о массовой отмене записей
type AppointmentsCancelledEvent struct {
	BarberID       uuid.UUID `json:"barber_id"`
	AppointmentIDs []int64   `json:"appointment_ids"`
	Reason         string    `json:"reason"`
}
