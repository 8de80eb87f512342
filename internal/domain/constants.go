package domain

import "time"

// Default configuration values
const (
	DefaultStepMinutes        = 30 // Шаг генерации слотов
	DefaultMinLeadTimeMinutes = 15 // Минимальный буфер между "сейчас" и ближайшим слотом
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов

	MaxReasonLength     = 500
	MaxClientNameLength = 120
	MaxPhoneLength      = 32

	MinDayOfWeek = 0 // Воскресенье
	MaxDayOfWeek = 6 // Суббота
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayDuration длительность календарного дня
const DayDuration = 24 * time.Hour

// DayBounds возвращает UTC-границы календарного дня даты: [00:00, 24:00)
func DayBounds(date time.Time) Interval {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return Interval{Start: start, End: start.Add(DayDuration)}
}

// InactiveStatuses статусы, не занимающие время в календаре
// Используется в SQL-фильтрах при подсчете занятости
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
