package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	catalogClient "github.com/n1kprav/BRB-BookingService/internal/integrations/catalogservice"
	"github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
	"github.com/n1kprav/BRB-BookingService/pkg/txmanager"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	blockRepo       BlockRepository
	catalogClient   CatalogServiceClient
	clientClient    ClientServiceClient
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	blockRepo BlockRepository,
	catalogClient CatalogServiceClient,
	clientClient ClientServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		blockRepo:       blockRepo,
		catalogClient:   catalogClient,
		clientClient:    clientClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		opts:            opts.normalize(),
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка идут в одной сериализуемой транзакции:
// два параллельных запроса на один интервал не могут закоммититься оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: barber=%s, service=%d, starts_at=%s",
		req.BarberID, req.ServiceID, req.StartsAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем тарифные ограничения барбера
	allowed, err := uc.catalogClient.CanAcceptOnlineBookings(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBarberNotFound) {
			uc.logger.Warn("CreateAppointment: barber id=%s not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateAppointment: failed to check barber plan id=%s: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to check barber plan: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Warn("CreateAppointment: online bookings disabled for barber id=%s", req.BarberID)
		return nil, ErrBookingsDisabled
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.BarberID != req.BarberID {
		uc.logger.Warn("CreateAppointment: service id=%d belongs to another barber", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	if err := validateServiceDuration(service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: service duration validation failed: %v", err)
		return nil, err
	}

	// 5. Находим или создаем клиента по телефону
	client, err := uc.clientClient.ResolveOrCreate(ctx, req.BarberID, req.ClientName, req.ClientPhone, req.ClientEmail)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve client: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
	}

	startsAt := req.StartsAt.UTC()
	candidate := domain.NewInterval(startsAt, time.Duration(service.DurationMinutes)*time.Minute)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Находим рабочее окно, вмещающее интервал записи
		window, err := uc.resolveBookingWindow(txCtx, req.BarberID, candidate)
		if err != nil {
			if errors.Is(err, ErrNonWorkingDay) || errors.Is(err, ErrOutsideWorkingHours) {
				uc.logger.Warn("CreateAppointment: window resolution rejected: %v", err)
			}
			return err
		}

		// 6.2. Интервал не должен пересекать перерыв
		if window.Break != nil && candidate.Overlaps(*window.Break) {
			uc.logger.Warn("CreateAppointment: interval overlaps break for barber=%s", req.BarberID)
			return ErrSlotTaken
		}

		// 6.3. Проверяем минимальное время до начала записи
		earliestStart := now.Add(time.Duration(uc.opts.MinLeadTimeMinutes) * time.Minute)
		if startsAt.Before(earliestStart) {
			uc.logger.Warn("CreateAppointment: starts_at=%s violates min lead time of %d minutes",
				startsAt.Format(time.RFC3339), uc.opts.MinLeadTimeMinutes)
			return ErrTooLateToBook
		}

		// 6.4. Получаем активные записи рабочего окна с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByBarberAndRange(txCtx, req.BarberID, window.Work.Start, window.Work.End, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		for _, appt := range appointments {
			if candidate.Overlaps(appt.Interval()) {
				uc.logger.Warn("CreateAppointment: interval overlaps appointment id=%d", appt.ID)
				return ErrSlotTaken
			}
		}

		// 6.5. Проверяем блокировки расписания
		blocks, err := uc.blockRepo.GetOverlappingRange(txCtx, req.BarberID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
		}

		if len(blocks) > 0 {
			uc.logger.Warn("CreateAppointment: interval overlaps block id=%d", blocks[0].ID)
			return ErrSlotTaken
		}

		// 6.6. Создаем запись с заморозкой цены и длительности услуги
		appt := &domain.Appointment{
			BarberID:        req.BarberID,
			ClientID:        client.ID,
			ServiceID:       service.ID,
			StartsAt:        startsAt,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			ClientName:      client.Name,
			ClientPhone:     client.Phone,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш сериализации - отдельная ошибка: слот, возможно, еще свободен
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateAppointment: serialization conflict for barber=%s, starts_at=%s",
				req.BarberID, startsAt.Format(time.RFC3339))
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 7. Уведомляем барбера после коммита; ошибка уведомления не откатывает запись
	if uc.notifyClient != nil {
		event := notifyservice.AppointmentCreatedEvent{
			AppointmentID: result.ID,
			BarberID:      result.BarberID,
			ClientID:      result.ClientID,
			ServiceName:   result.ServiceName,
			StartsAt:      result.StartsAt,
		}
		if err := uc.notifyClient.AppointmentCreated(ctx, event); err != nil {
			uc.logger.Error("CreateAppointment: failed to send notification for appointment id=%d: %v", result.ID, err)
		}
	}

	return &Response{
		ID:              result.ID,
		BarberID:        result.BarberID,
		ClientID:        result.ClientID,
		ServiceID:       result.ServiceID,
		StartsAt:        result.StartsAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
