package get_availability

import (
	"time"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

// generateSlots строит сетку кандидатов по рабочему окну дня и отсекает занятые
//
// Кандидат начинается на границе шага от начала окна; последний кандидат тот,
// чей конец еще помещается в окно (конец может совпадать с концом окна -
// интервалы полуоткрытые). Кандидат отбрасывается, если он пересекает перерыв,
// активную запись, блокировку или начинается раньше now+minLeadTime
func generateSlots(
	window domain.DayWindow,
	serviceDurationMinutes int,
	opts Options,
	now time.Time,
	appointments []*domain.Appointment,
	blocks []*domain.ScheduleBlock,
) []domain.Slot {
	slots := make([]domain.Slot, 0)

	step := time.Duration(opts.StepMinutes) * time.Minute
	serviceDuration := time.Duration(serviceDurationMinutes) * time.Minute
	earliestStart := now.Add(time.Duration(opts.MinLeadTimeMinutes) * time.Minute)

	for start := window.Work.Start; ; start = start.Add(step) {
		candidate := domain.NewInterval(start, serviceDuration)
		if candidate.End.After(window.Work.End) {
			break
		}

		if window.Break != nil && candidate.Overlaps(*window.Break) {
			continue
		}

		if overlapsAppointments(candidate, appointments) {
			continue
		}

		if overlapsBlocks(candidate, blocks) {
			continue
		}

		if candidate.Start.Before(earliestStart) {
			continue
		}

		slots = append(slots, domain.Slot{
			StartsAt:        candidate.Start,
			DurationMinutes: serviceDurationMinutes,
		})
	}

	return slots
}

func overlapsAppointments(candidate domain.Interval, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if candidate.Overlaps(appt.Interval()) {
			return true
		}
	}
	return false
}

func overlapsBlocks(candidate domain.Interval, blocks []*domain.ScheduleBlock) bool {
	for _, blk := range blocks {
		if candidate.Overlaps(blk.Interval()) {
			return true
		}
	}
	return false
}
