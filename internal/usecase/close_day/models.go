package close_day

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на закрытие дня
type Request struct {
	BarberID uuid.UUID // ID барбера
	Date     time.Time // Закрываемая дата (полночь UTC)
	Reason   string    // Причина закрытия
}

// Response модель результата закрытия дня
type Response struct {
	BlockID        int64     `json:"block_id"`
	BarberID       uuid.UUID `json:"barber_id"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Reason         string    `json:"reason"`
	CancelledCount int64     `json:"cancelled_count"`
	CancelledIDs   []int64   `json:"cancelled_ids"`
}
