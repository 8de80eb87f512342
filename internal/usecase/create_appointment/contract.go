package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/catalogservice"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/clientservice"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetByBarberAndRange получает записи барбера, пересекающие [from, to)
	// Внутри транзакции строки блокируются (FOR UPDATE)
	GetByBarberAndRange(ctx context.Context, barberID uuid.UUID, from, to time.Time, includeInactive bool) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByBarberAndWeekday(ctx context.Context, barberID uuid.UUID, dayOfWeek int) (*domain.WeeklySchedule, error)
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	GetOverlappingRange(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]*domain.ScheduleBlock, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	CanAcceptOnlineBookings(ctx context.Context, barberID uuid.UUID) (bool, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	ResolveOrCreate(ctx context.Context, barberID uuid.UUID, name, phone string, email *string) (*clientservice.Client, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	AppointmentCreated(ctx context.Context, event notifyservice.AppointmentCreatedEvent) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
