package domain

import (
	"time"

	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

// Slot represents a bookable start time offered to a client
type Slot struct {
	StartsAt        time.Time // UTC instant начала слота
	DurationMinutes int
}

// Label форматирует начало слота как "HH:MM" в указанной зоне
// Конвертация в зону клиента происходит только на границе API -
// все внутренние сравнения остаются в UTC
func (s Slot) Label(loc *time.Location) types.TimeString {
	if loc == nil {
		loc = time.UTC
	}
	return types.NewTimeString(s.StartsAt.In(loc))
}
