package get_availability

import (
	"time"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	getAvailability "github.com/n1kprav/BRB-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date         string         `json:"date"`
	BarberID     string         `json:"barberId"`
	ServiceID    int64          `json:"serviceId"`
	IsWorkingDay bool           `json:"isWorkingDay"`
	Reason       string         `json:"reason,omitempty"`
	Slots        []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00" в часовом поясе запроса
	StartsAt        string `json:"startsAt"`  // RFC3339, UTC
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			StartsAt:        s.StartsAt.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailabilityResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		BarberID:     resp.BarberID.String(),
		ServiceID:    resp.ServiceID,
		IsWorkingDay: resp.IsWorkingDay,
		Reason:       resp.Reason,
		Slots:        slots,
	}
}
