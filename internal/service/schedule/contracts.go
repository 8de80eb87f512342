package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	Upsert(ctx context.Context, sched *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	GetAllByBarber(ctx context.Context, barberID uuid.UUID) ([]*domain.WeeklySchedule, error)
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	Create(ctx context.Context, blk *domain.ScheduleBlock) (*domain.ScheduleBlock, error)
	GetActualByBarber(ctx context.Context, barberID uuid.UUID, now time.Time) ([]*domain.ScheduleBlock, error)
	Delete(ctx context.Context, id int64, barberID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
