package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// Appointment represents a client appointment in a barber's calendar
type Appointment struct {
	ID        int64
	BarberID  uuid.UUID
	ClientID  int64
	ServiceID int64

	// Начало записи - абсолютный UTC instant
	// Конец выводится из замороженной длительности услуги
	StartsAt        time.Time
	DurationMinutes int
	Status          AppointmentStatus

	// Данные услуги, замороженные на момент создания записи:
	// последующие правки каталога не меняют уже созданные записи
	ServiceName  string
	ServicePrice float64

	// Denormalized client data for history
	ClientName  string
	ClientPhone string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает занимаемый записью интервал [StartsAt, StartsAt+duration)
func (a *Appointment) Interval() Interval {
	return NewInterval(a.StartsAt, time.Duration(a.DurationMinutes)*time.Minute)
}

// IsActive returns true if the appointment occupies calendar time
// Активны все записи кроме отменённых - инвариант непересечения
// распространяется именно на это множество
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can transition to CANCELLED
// Отмена разрешена из любого нетерминального статуса
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// CanTransitionTo проверяет допустимость перехода статуса
// Переходы никогда не перепроверяют пересечения - инвариант непересечения
// гарантируется только при создании записи
//
// Проверка "начало в прошлом" для COMPLETED выполняется на уровне сервиса,
// т.к. требует текущего времени
func (a *Appointment) CanTransitionTo(status AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}

	switch status {
	case StatusConfirmed:
		return a.Status == StatusPending
	case StatusCompleted:
		return a.Status == StatusPending || a.Status == StatusConfirmed
	case StatusNoShow:
		return a.Status == StatusPending || a.Status == StatusConfirmed
	case StatusCancelled:
		return true
	default:
		return false
	}
}

// IsValidStatus проверяет, что строка является допустимым статусом
func IsValidStatus(s string) bool {
	for _, status := range ValidStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}
