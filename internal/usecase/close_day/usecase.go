package close_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
	"github.com/n1kprav/BRB-BookingService/pkg/txmanager"
)

// DefaultReason причина, записываемая в отмененные записи, если барбер свою не указал
const DefaultReason = "day closed by barber"

// UseCase use case для экстренного закрытия дня
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case закрытия дня
// Отмена записей дня и вставка блокировки на весь день идут в одной
// сериализуемой транзакции: либо применяется все, либо ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CloseDay: barber=%s, date=%s", req.BarberID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CloseDay: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CloseDay: date validation failed: %v", err)
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultReason
	}

	bounds := domain.DayBounds(req.Date)

	var createdBlock *domain.ScheduleBlock
	var cancelledIDs []int64

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем записи, пересекающие закрываемый день, с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByBarberAndRange(txCtx, req.BarberID, bounds.Start, bounds.End, false)
		if err != nil {
			uc.logger.Error("CloseDay: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.2. Отменяем все незавершенные записи дня
		// Уже оказанные услуги (COMPLETED) отмене не подлежат
		cancelledIDs = cancelledIDs[:0]
		for _, appt := range appointments {
			if appt.IsTerminal() {
				continue
			}
			cancelledIDs = append(cancelledIDs, appt.ID)
		}

		if len(cancelledIDs) > 0 {
			affected, err := uc.appointmentRepo.CancelByIDs(txCtx, cancelledIDs, reason)
			if err != nil {
				uc.logger.Error("CloseDay: failed to cancel appointments: %v", err)
				return fmt.Errorf("%w: failed to cancel appointments: %v", ErrInternal, err)
			}
			uc.logger.Info("CloseDay: cancelled %d appointments for barber=%s", affected, req.BarberID)
		}

		// 4.3. Создаем блокировку на весь день
		blk := &domain.ScheduleBlock{
			BarberID: req.BarberID,
			StartsAt: bounds.Start,
			EndsAt:   bounds.End,
			Reason:   reason,
		}

		created, err := uc.blockRepo.Create(txCtx, blk)
		if err != nil {
			uc.logger.Error("CloseDay: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		createdBlock = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CloseDay: serialization conflict for barber=%s, date=%s",
				req.BarberID, req.Date.Format(domain.DateFormat))
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	uc.logger.Info("CloseDay: day %s closed for barber=%s, block id=%d, cancelled=%d",
		req.Date.Format(domain.DateFormat), req.BarberID, createdBlock.ID, len(cancelledIDs))

	// 5. Уведомляем клиентов после коммита; ошибка уведомления не откатывает закрытие
	if uc.notifyClient != nil && len(cancelledIDs) > 0 {
		event := notifyservice.AppointmentsCancelledEvent{
			BarberID:       req.BarberID,
			AppointmentIDs: cancelledIDs,
			Reason:         reason,
		}
		if err := uc.notifyClient.AppointmentsCancelled(ctx, event); err != nil {
			uc.logger.Error("CloseDay: failed to send cancellation notifications: %v", err)
		}
	}

	return &Response{
		BlockID:        createdBlock.ID,
		BarberID:       createdBlock.BarberID,
		StartsAt:       createdBlock.StartsAt,
		EndsAt:         createdBlock.EndsAt,
		Reason:         createdBlock.Reason,
		CancelledCount: int64(len(cancelledIDs)),
		CancelledIDs:   cancelledIDs,
	}, nil
}
