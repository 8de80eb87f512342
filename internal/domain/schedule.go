package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

// WeeklySchedule represents the recurring working hours of a barber
// for one day of week (0 = Sunday ... 6 = Saturday)
//
// Времена - wall-clock значения в UTC-календаре: день недели даты
// определяется по UTC, а не по зоне клиента, чтобы рабочие часы
// были детерминированы (зона клиента влияет только на форматирование ответа)
type WeeklySchedule struct {
	ID        int64
	BarberID  uuid.UUID
	DayOfWeek int // 0=Воскресенье ... 6=Суббота
	IsWorkDay bool

	StartTime types.TimeString
	EndTime   types.TimeString

	// Перерыв опционален: либо оба поля заданы, либо оба отсутствуют
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak returns true if a break is configured for the day
func (s *WeeklySchedule) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil
}

// DayWindow рабочее окно барбера, привязанное к конкретной дате
type DayWindow struct {
	// Work рабочий интервал [workStart, workEnd)
	// Для ночных смен End уходит на следующие календарные сутки
	Work Interval

	// Break интервал перерыва внутри рабочего окна (nil, если перерыв не задан)
	Break *Interval
}

// ResolveForDate привязывает недельную конфигурацию к конкретной дате (UTC)
//
// Правила переноса через полночь:
//   - endTime <= startTime → смена закрывается на следующий день (+24ч к концу)
//   - breakEnd <= breakStart → конец перерыва переносится на следующий день
//   - breakStart < workStart → весь перерыв сдвигается на сутки вперед,
//     чтобы он попал внутрь расширенного рабочего окна
func (s *WeeklySchedule) ResolveForDate(date time.Time) (DayWindow, error) {
	workStart, err := s.StartTime.AnchorTo(date)
	if err != nil {
		return DayWindow{}, fmt.Errorf("resolve schedule: invalid start time: %w", err)
	}

	workEnd, err := s.EndTime.AnchorTo(date)
	if err != nil {
		return DayWindow{}, fmt.Errorf("resolve schedule: invalid end time: %w", err)
	}

	// Ночная смена: конец раньше или равен началу - закрытие на следующий день
	if !workEnd.After(workStart) {
		workEnd = workEnd.Add(DayDuration)
	}

	window := DayWindow{Work: Interval{Start: workStart, End: workEnd}}

	if !s.HasBreak() {
		return window, nil
	}

	breakStart, err := s.BreakStart.AnchorTo(date)
	if err != nil {
		return DayWindow{}, fmt.Errorf("resolve schedule: invalid break start: %w", err)
	}

	breakEnd, err := s.BreakEnd.AnchorTo(date)
	if err != nil {
		return DayWindow{}, fmt.Errorf("resolve schedule: invalid break end: %w", err)
	}

	// Перенос перерыва через полночь - согласован с переносом рабочего окна
	if !breakEnd.After(breakStart) {
		breakEnd = breakEnd.Add(DayDuration)
	}
	if breakStart.Before(workStart) {
		breakStart = breakStart.Add(DayDuration)
		breakEnd = breakEnd.Add(DayDuration)
	}

	window.Break = &Interval{Start: breakStart, End: breakEnd}
	return window, nil
}

// UTCDayOfWeek возвращает день недели даты в UTC-календаре
func UTCDayOfWeek(date time.Time) int {
	return int(date.UTC().Weekday())
}
