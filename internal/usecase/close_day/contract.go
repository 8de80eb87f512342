package close_day

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByBarberAndRange получает записи барбера, пересекающие [from, to)
	// Внутри транзакции строки блокируются (FOR UPDATE)
	GetByBarberAndRange(ctx context.Context, barberID uuid.UUID, from, to time.Time, includeInactive bool) ([]*domain.Appointment, error)
	CancelByIDs(ctx context.Context, ids []int64, reason string) (int64, error)
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	Create(ctx context.Context, blk *domain.ScheduleBlock) (*domain.ScheduleBlock, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	AppointmentsCancelled(ctx context.Context, event notifyservice.AppointmentsCancelledEvent) error
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
