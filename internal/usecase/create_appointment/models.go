package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	BarberID    uuid.UUID // ID барбера
	ServiceID   int64     // ID услуги из каталога
	StartsAt    time.Time // Момент начала записи (UTC)
	ClientName  string    // Имя клиента
	ClientPhone string    // Телефон клиента
	ClientEmail *string   // Email клиента (опционально)
}

// Options настройки создания записи
type Options struct {
	MinLeadTimeMinutes int // Минимальное время до начала записи
}

// Response модель созданной записи
type Response struct {
	ID              int64     `json:"id"`
	BarberID        uuid.UUID `json:"barber_id"`
	ClientID        int64     `json:"client_id"`
	ServiceID       int64     `json:"service_id"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"service_name"`
	ServicePrice    float64   `json:"service_price"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// normalize подставляет дефолты вместо незаполненных настроек
func (o Options) normalize() Options {
	if o.MinLeadTimeMinutes < 0 {
		o.MinLeadTimeMinutes = domain.DefaultMinLeadTimeMinutes
	}
	return o
}
