package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleBlock represents an ad-hoc closed range in a barber's calendar
// (vacation, emergency closure), independent of the weekly schedule
// Может длиться произвольно долго и покрывать несколько дней
type ScheduleBlock struct {
	ID       int64
	BarberID uuid.UUID

	// Абсолютный UTC-диапазон [StartsAt, EndsAt)
	StartsAt time.Time
	EndsAt   time.Time

	Reason string

	CreatedAt time.Time
}

// Interval возвращает закрытый диапазон как интервал
func (b *ScheduleBlock) Interval() Interval {
	return Interval{Start: b.StartsAt, End: b.EndsAt}
}

// IsExpired returns true if the block has fully ended before now
func (b *ScheduleBlock) IsExpired(now time.Time) bool {
	return !b.EndsAt.After(now)
}
