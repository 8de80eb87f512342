package close_day

import (
	"time"

	closeDay "github.com/n1kprav/BRB-BookingService/internal/usecase/close_day"
)

// CloseDayRequest HTTP request model
type CloseDayRequest struct {
	Date   string `json:"date"` // "2025-10-15"
	Reason string `json:"reason,omitempty"`
}

// CloseDayResponse HTTP response model
type CloseDayResponse struct {
	BlockID        int64   `json:"blockId"`
	BarberID       string  `json:"barberId"`
	StartsAt       string  `json:"startsAt"`
	EndsAt         string  `json:"endsAt"`
	Reason         string  `json:"reason"`
	CancelledCount int64   `json:"cancelledCount"`
	CancelledIDs   []int64 `json:"cancelledIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *closeDay.Response) *CloseDayResponse {
	return &CloseDayResponse{
		BlockID:        resp.BlockID,
		BarberID:       resp.BarberID.String(),
		StartsAt:       resp.StartsAt.Format(time.RFC3339),
		EndsAt:         resp.EndsAt.Format(time.RFC3339),
		Reason:         resp.Reason,
		CancelledCount: resp.CancelledCount,
		CancelledIDs:   resp.CancelledIDs,
	}
}
