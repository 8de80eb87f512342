package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	scheduleRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/schedule"
)

// resolveBookingWindow находит рабочее окно, вмещающее интервал записи
//
// Сначала проверяется окно дня, на который приходится начало записи.
// Если оно не подходит, проверяется окно предыдущего дня: смена, начавшаяся
// накануне вечером, может переходить через полночь и накрывать этот интервал
//
// Возвращает ErrNonWorkingDay, если ни один из двух дней не рабочий,
// и ErrOutsideWorkingHours, если рабочие окна есть, но интервал в них не помещается
func (uc *UseCase) resolveBookingWindow(ctx context.Context, barberID uuid.UUID, candidate domain.Interval) (domain.DayWindow, error) {
	day := time.Date(
		candidate.Start.Year(), candidate.Start.Month(), candidate.Start.Day(),
		0, 0, 0, 0, time.UTC,
	)

	sawWorkingDay := false

	for _, date := range []time.Time{day, day.AddDate(0, 0, -1)} {
		sched, err := uc.scheduleRepo.GetByBarberAndWeekday(ctx, barberID, domain.UTCDayOfWeek(date))
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				continue
			}
			return domain.DayWindow{}, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		if !sched.IsWorkDay {
			continue
		}
		sawWorkingDay = true

		window, err := sched.ResolveForDate(date)
		if err != nil {
			return domain.DayWindow{}, fmt.Errorf("%w: failed to resolve day window: %v", ErrInternal, err)
		}

		if window.Work.Contains(candidate) {
			return window, nil
		}
	}

	if !sawWorkingDay {
		return domain.DayWindow{}, ErrNonWorkingDay
	}

	return domain.DayWindow{}, ErrOutsideWorkingHours
}
