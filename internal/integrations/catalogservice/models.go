package catalogservice

import "github.com/google/uuid"

// Service модель услуги из CatalogService
type Service struct {
	ID              int64     `json:"id"`
	BarberID        uuid.UUID `json:"barber_id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
}

// BarberPlan модель тарифных ограничений барбера
type BarberPlan struct {
	BarberID             uuid.UUID `json:"barber_id"`
	Plan                 string    `json:"plan"`
	OnlineBookingEnabled bool      `json:"online_booking_enabled"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
