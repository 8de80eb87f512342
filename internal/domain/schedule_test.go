package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

func tsPtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func TestWeeklySchedule_ResolveForDate(t *testing.T) {
	// 2025-10-15 - среда
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		sched      WeeklySchedule
		wantStart  string
		wantEnd    string
		wantBreak  bool
		breakStart string
		breakEnd   string
	}{
		{
			name: "regular day",
			sched: WeeklySchedule{
				IsWorkDay: true,
				StartTime: "09:00",
				EndTime:   "17:00",
			},
			wantStart: "2025-10-15T09:00:00Z",
			wantEnd:   "2025-10-15T17:00:00Z",
		},
		{
			name: "regular day with break",
			sched: WeeklySchedule{
				IsWorkDay:  true,
				StartTime:  "09:00",
				EndTime:    "17:00",
				BreakStart: tsPtr("12:00"),
				BreakEnd:   tsPtr("13:00"),
			},
			wantStart:  "2025-10-15T09:00:00Z",
			wantEnd:    "2025-10-15T17:00:00Z",
			wantBreak:  true,
			breakStart: "2025-10-15T12:00:00Z",
			breakEnd:   "2025-10-15T13:00:00Z",
		},
		{
			name: "overnight shift",
			sched: WeeklySchedule{
				IsWorkDay: true,
				StartTime: "18:00",
				EndTime:   "02:00",
			},
			wantStart: "2025-10-15T18:00:00Z",
			wantEnd:   "2025-10-16T02:00:00Z",
		},
		{
			name: "overnight shift with break after midnight",
			sched: WeeklySchedule{
				IsWorkDay:  true,
				StartTime:  "18:00",
				EndTime:    "02:00",
				BreakStart: tsPtr("00:30"),
				BreakEnd:   tsPtr("01:00"),
			},
			wantStart:  "2025-10-15T18:00:00Z",
			wantEnd:    "2025-10-16T02:00:00Z",
			wantBreak:  true,
			breakStart: "2025-10-16T00:30:00Z",
			breakEnd:   "2025-10-16T01:00:00Z",
		},
		{
			name: "overnight shift with break spanning midnight",
			sched: WeeklySchedule{
				IsWorkDay:  true,
				StartTime:  "18:00",
				EndTime:    "04:00",
				BreakStart: tsPtr("23:30"),
				BreakEnd:   tsPtr("00:30"),
			},
			wantStart:  "2025-10-15T18:00:00Z",
			wantEnd:    "2025-10-16T04:00:00Z",
			wantBreak:  true,
			breakStart: "2025-10-15T23:30:00Z",
			breakEnd:   "2025-10-16T00:30:00Z",
		},
		{
			name: "full day shift when end equals start",
			sched: WeeklySchedule{
				IsWorkDay: true,
				StartTime: "08:00",
				EndTime:   "08:00",
			},
			wantStart: "2025-10-15T08:00:00Z",
			wantEnd:   "2025-10-16T08:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := tt.sched.ResolveForDate(date)
			require.NoError(t, err)

			assert.Equal(t, mustTime(t, tt.wantStart), window.Work.Start)
			assert.Equal(t, mustTime(t, tt.wantEnd), window.Work.End)

			if tt.wantBreak {
				require.NotNil(t, window.Break)
				assert.Equal(t, mustTime(t, tt.breakStart), window.Break.Start)
				assert.Equal(t, mustTime(t, tt.breakEnd), window.Break.End)
				// Перерыв всегда внутри рабочего окна
				assert.True(t, window.Work.Contains(*window.Break))
			} else {
				assert.Nil(t, window.Break)
			}
		})
	}
}

func TestWeeklySchedule_ResolveForDate_InvalidTime(t *testing.T) {
	sched := WeeklySchedule{
		IsWorkDay: true,
		StartTime: "25:99",
		EndTime:   "17:00",
	}

	_, err := sched.ResolveForDate(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestUTCDayOfWeek(t *testing.T) {
	// 2025-10-12 - воскресенье, 2025-10-18 - суббота
	assert.Equal(t, 0, UTCDayOfWeek(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, UTCDayOfWeek(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, UTCDayOfWeek(time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)))

	// Момент, попадающий на другой календарный день в зоне клиента,
	// все равно резолвится по UTC
	loc := time.FixedZone("UTC+12", 12*3600)
	lateEvening := time.Date(2025, 10, 16, 1, 0, 0, 0, loc) // 2025-10-15 13:00 UTC
	assert.Equal(t, 3, UTCDayOfWeek(lateEvening))
}
