package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return ts
}

func window(t *testing.T, start, end string) domain.DayWindow {
	t.Helper()
	return domain.DayWindow{
		Work: domain.Interval{Start: mustTime(t, start), End: mustTime(t, end)},
	}
}

func slotStarts(slots []domain.Slot) []time.Time {
	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartsAt)
	}
	return starts
}

func TestGenerateSlots_RegularDayWithBreak(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T17:00:00Z")
	w.Break = &domain.Interval{
		Start: mustTime(t, "2025-10-15T12:00:00Z"),
		End:   mustTime(t, "2025-10-15T13:00:00Z"),
	}

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 15}
	// Задолго до начала дня - ограничение lead time не срезает слоты
	now := mustTime(t, "2025-10-14T00:00:00Z")

	slots := generateSlots(w, 30, opts, now, nil, nil)

	// Сетка 09:00..16:30 за вычетом 12:00 и 12:30
	require.Len(t, slots, 14)
	starts := slotStarts(slots)
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T12:00:00Z"))
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T12:30:00Z"))
	// Слот, заканчивающийся ровно на границе перерыва, допустим
	assert.Contains(t, starts, mustTime(t, "2025-10-15T11:30:00Z"))
	// Последний слот заканчивается ровно в конце окна
	assert.Equal(t, mustTime(t, "2025-10-15T16:30:00Z"), starts[len(starts)-1])
}

func TestGenerateSlots_LongServiceAroundBreak(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T17:00:00Z")
	w.Break = &domain.Interval{
		Start: mustTime(t, "2025-10-15T12:00:00Z"),
		End:   mustTime(t, "2025-10-15T13:00:00Z"),
	}

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 0}
	now := mustTime(t, "2025-10-14T00:00:00Z")

	slots := generateSlots(w, 60, opts, now, nil, nil)

	starts := slotStarts(slots)
	// 11:30-12:30 пересекает перерыв, 13:00-14:00 уже нет
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T11:30:00Z"))
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T12:00:00Z"))
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T12:30:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T11:00:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T13:00:00Z"))
	// Часовая услуга не помещается после 16:00
	assert.Equal(t, mustTime(t, "2025-10-15T16:00:00Z"), starts[len(starts)-1])
}

func TestGenerateSlots_OvernightShift(t *testing.T) {
	// Смена 18:00-02:00: окно уходит на следующие сутки
	w := window(t, "2025-10-15T18:00:00Z", "2025-10-16T02:00:00Z")

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 0}
	now := mustTime(t, "2025-10-15T00:00:00Z")

	slots := generateSlots(w, 60, opts, now, nil, nil)

	require.Len(t, slots, 15)
	starts := slotStarts(slots)
	assert.Equal(t, mustTime(t, "2025-10-15T18:00:00Z"), starts[0])
	assert.Equal(t, mustTime(t, "2025-10-16T01:00:00Z"), starts[len(starts)-1])
}

func TestGenerateSlots_MinLeadTime(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T17:00:00Z")

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 15}
	// 09:50 + 15 минут = 10:05, первый слот на сетке - 10:30
	now := mustTime(t, "2025-10-15T09:50:00Z")

	slots := generateSlots(w, 30, opts, now, nil, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, mustTime(t, "2025-10-15T10:30:00Z"), slots[0].StartsAt)
}

func TestGenerateSlots_OccupiedAndCancelled(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T17:00:00Z")

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 0}
	now := mustTime(t, "2025-10-14T00:00:00Z")

	appointments := []*domain.Appointment{
		{
			StartsAt:        mustTime(t, "2025-10-15T10:00:00Z"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
		// Отменённая запись не занимает календарное время
		{
			StartsAt:        mustTime(t, "2025-10-15T14:00:00Z"),
			DurationMinutes: 60,
			Status:          domain.StatusCancelled,
		},
	}

	slots := generateSlots(w, 30, opts, now, appointments, nil)

	starts := slotStarts(slots)
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T10:00:00Z"))
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T10:30:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T11:00:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T14:00:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T14:30:00Z"))
}

func TestGenerateSlots_Blocks(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T17:00:00Z")

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 0}
	now := mustTime(t, "2025-10-14T00:00:00Z")

	blocks := []*domain.ScheduleBlock{
		{
			StartsAt: mustTime(t, "2025-10-15T15:00:00Z"),
			EndsAt:   mustTime(t, "2025-10-15T16:00:00Z"),
		},
	}

	slots := generateSlots(w, 30, opts, now, nil, blocks)

	starts := slotStarts(slots)
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T15:00:00Z"))
	assert.NotContains(t, starts, mustTime(t, "2025-10-15T15:30:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T14:30:00Z"))
	assert.Contains(t, starts, mustTime(t, "2025-10-15T16:00:00Z"))
}

func TestGenerateSlots_ServiceLongerThanWindow(t *testing.T) {
	w := window(t, "2025-10-15T09:00:00Z", "2025-10-15T10:00:00Z")

	opts := Options{StepMinutes: 30, MinLeadTimeMinutes: 0}
	now := mustTime(t, "2025-10-14T00:00:00Z")

	slots := generateSlots(w, 90, opts, now, nil, nil)
	assert.Empty(t, slots)
}
