package clientservice

import "github.com/google/uuid"

// Client модель клиента барбера из ClientService
type Client struct {
	ID       int64     `json:"id"`
	BarberID uuid.UUID `json:"barber_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    *string   `json:"email,omitempty"`
}

// resolveRequest тело запроса поиска-или-создания клиента
type resolveRequest struct {
	BarberID uuid.UUID `json:"barber_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    *string   `json:"email,omitempty"`
}

// ErrorResponse модель ошибки от ClientService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
