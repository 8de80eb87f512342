package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End) в UTC
// Единственное место в сервисе, где определена проверка пересечения:
// доступность, создание записи и закрытие дня обязаны использовать её,
// а не собственные формулы
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал от start длительностью duration
func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

// IsValid проверяет, что интервал непустой (End строго позже Start)
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps проверяет реальное пересечение двух полуоткрытых интервалов:
// aStart < bEnd И aEnd > bStart
// Граничные случаи (один заканчивается ровно там, где начинается другой)
// пересечением НЕ считаются. Интервалы нулевой длины не пересекаются ни с чем
//
// Примеры:
// - [10:00, 10:30) и [10:29, 11:00) → пересекаются
// - [10:00, 10:30) и [10:30, 11:00) → не пересекаются (граничат)
func (i Interval) Overlaps(other Interval) bool {
	if !i.IsValid() || !other.IsValid() {
		return false
	}
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains проверяет, что other целиком лежит внутри интервала
func (i Interval) Contains(other Interval) bool {
	if !i.IsValid() || !other.IsValid() {
		return false
	}
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}
