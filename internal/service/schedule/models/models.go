package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

var (
	// ErrInvalidDay возвращается при некорректной конфигурации дня недели
	ErrInvalidDay = errors.New("invalid day schedule")
)

// Request модели

// DaySchedule конфигурация одного дня недели
// Для нерабочего дня времена игнорируются; рабочее окно, переходящее
// через полночь (endTime <= startTime), допустимо
type DaySchedule struct {
	DayOfWeek  int     `json:"dayOfWeek"`  // 0 = воскресенье ... 6 = суббота
	IsWorkDay  bool    `json:"isWorkDay"`  // Рабочий ли день
	StartTime  string  `json:"startTime"`  // "10:00"
	EndTime    string  `json:"endTime"`    // "19:00"
	BreakStart *string `json:"breakStart,omitempty"` // Начало перерыва (опционально)
	BreakEnd   *string `json:"breakEnd,omitempty"`   // Конец перерыва (опционально)
}

// UpdateScheduleRequest запрос на обновление недельного расписания
type UpdateScheduleRequest struct {
	Days []DaySchedule `json:"days"`
}

// CreateBlockRequest запрос на создание блокировки
type CreateBlockRequest struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   string    `json:"reason"`
}

// Validate проверяет конфигурацию дня недели
func (d *DaySchedule) Validate() error {
	if d.DayOfWeek < domain.MinDayOfWeek || d.DayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidDay, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if !d.IsWorkDay {
		return nil
	}

	if err := types.TimeString(d.StartTime).Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidDay, err)
	}

	if err := types.TimeString(d.EndTime).Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidDay, err)
	}

	// Перерыв задается либо целиком, либо никак
	if (d.BreakStart == nil) != (d.BreakEnd == nil) {
		return fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidDay)
	}

	if d.BreakStart != nil {
		if err := types.TimeString(*d.BreakStart).Validate(); err != nil {
			return fmt.Errorf("%w: breakStart: %v", ErrInvalidDay, err)
		}
		if err := types.TimeString(*d.BreakEnd).Validate(); err != nil {
			return fmt.Errorf("%w: breakEnd: %v", ErrInvalidDay, err)
		}
	}

	return nil
}

// ToDomain конвертирует конфигурацию дня в доменную модель
func (d *DaySchedule) ToDomain(barberID uuid.UUID) *domain.WeeklySchedule {
	sched := &domain.WeeklySchedule{
		BarberID:  barberID,
		DayOfWeek: d.DayOfWeek,
		IsWorkDay: d.IsWorkDay,
		StartTime: types.TimeString(d.StartTime),
		EndTime:   types.TimeString(d.EndTime),
	}

	if d.BreakStart != nil && d.BreakEnd != nil {
		breakStart := types.TimeString(*d.BreakStart)
		breakEnd := types.TimeString(*d.BreakEnd)
		sched.BreakStart = &breakStart
		sched.BreakEnd = &breakEnd
	}

	return sched
}

// Response модели

// DayScheduleResponse ответ с конфигурацией дня недели
type DayScheduleResponse struct {
	ID         int64   `json:"id"`
	DayOfWeek  int     `json:"dayOfWeek"`
	IsWorkDay  bool    `json:"isWorkDay"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ScheduleResponse ответ с недельным расписанием
type ScheduleResponse struct {
	BarberID uuid.UUID             `json:"barberId"`
	Days     []DayScheduleResponse `json:"days"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64     `json:"id"`
	BarberID  uuid.UUID `json:"barberId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
	Total  int             `json:"total"`
}

// FromDomainSchedule конвертирует доменную конфигурацию дня в response
func FromDomainSchedule(sched *domain.WeeklySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{
		ID:        sched.ID,
		DayOfWeek: sched.DayOfWeek,
		IsWorkDay: sched.IsWorkDay,
		StartTime: sched.StartTime.String(),
		EndTime:   sched.EndTime.String(),
	}

	if sched.HasBreak() {
		breakStart := sched.BreakStart.String()
		breakEnd := sched.BreakEnd.String()
		resp.BreakStart = &breakStart
		resp.BreakEnd = &breakEnd
	}

	return resp
}

// FromDomainScheduleList конвертирует недельное расписание в response
func FromDomainScheduleList(barberID uuid.UUID, schedules []*domain.WeeklySchedule) *ScheduleResponse {
	days := make([]DayScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		days = append(days, FromDomainSchedule(sched))
	}
	return &ScheduleResponse{
		BarberID: barberID,
		Days:     days,
	}
}

// FromDomainBlock конвертирует доменную блокировку в response
func FromDomainBlock(blk *domain.ScheduleBlock) *BlockResponse {
	return &BlockResponse{
		ID:        blk.ID,
		BarberID:  blk.BarberID,
		StartsAt:  blk.StartsAt,
		EndsAt:    blk.EndsAt,
		Reason:    blk.Reason,
		CreatedAt: blk.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список блокировок в response
func FromDomainBlockList(blocks []*domain.ScheduleBlock) *BlockListResponse {
	items := make([]BlockResponse, 0, len(blocks))
	for _, blk := range blocks {
		items = append(items, *FromDomainBlock(blk))
	}
	return &BlockListResponse{
		Blocks: items,
		Total:  len(items),
	}
}
