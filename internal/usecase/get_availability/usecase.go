package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	scheduleRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/n1kprav/BRB-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов барбера
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	blockRepo       BlockRepository
	catalogClient   CatalogServiceClient
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
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		blockRepo:       blockRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		opts:            opts.normalize(),
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: barber=%s, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем тарифные ограничения барбера
	allowed, err := uc.catalogClient.CanAcceptOnlineBookings(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailability: barber id=%s not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailability: failed to check barber plan id=%s: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to check barber plan: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Warn("GetAvailability: online bookings disabled for barber id=%s", req.BarberID)
		return nil, ErrBookingsDisabled
	}

	// 5. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Услуга другого барбера недоступна для бронирования у этого
	if service.BarberID != req.BarberID {
		uc.logger.Warn("GetAvailability: service id=%d belongs to another barber", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 6. Разрешаем день недели по UTC и достаем конфигурацию дня
	dayOfWeek := domain.UTCDayOfWeek(req.Date)
	sched, err := uc.scheduleRepo.GetByBarberAndWeekday(ctx, req.BarberID, dayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			// Незаполненный день недели трактуется как нерабочий
			uc.logger.Info("GetAvailability: no schedule for barber=%s, weekday=%d", req.BarberID, dayOfWeek)
			return nonWorkingDayResponse(req), nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if !sched.IsWorkDay {
		uc.logger.Info("GetAvailability: barber=%s is not working on %s", req.BarberID, req.Date.Format(domain.DateFormat))
		return nonWorkingDayResponse(req), nil
	}

	// 7. Строим рабочее окно дня (с учетом переноса через полночь)
	window, err := sched.ResolveForDate(req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve day window: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve day window: %v", ErrInternal, err)
	}

	// 8. Получаем активные записи, пересекающие рабочее окно
	appointments, err := uc.appointmentRepo.GetByBarberAndRange(ctx, req.BarberID, window.Work.Start, window.Work.End, false)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Получаем блокировки, пересекающие рабочее окно
	blocks, err := uc.blockRepo.GetOverlappingRange(ctx, req.BarberID, window.Work.Start, window.Work.End)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 10. Генерируем свободные слоты
	domainSlots := generateSlots(window, service.DurationMinutes, uc.opts, now, appointments, blocks)

	// 11. Форматируем метки времени в часовом поясе запроса
	slots := make([]Slot, 0, len(domainSlots))
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, s := range domainSlots {
		slots = append(slots, Slot{
			StartTime:       s.Label(loc),
			StartsAt:        s.StartsAt,
			DurationMinutes: s.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailability: generated %d slots for barber=%s, service=%d, date=%s",
		len(slots), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:         req.Date,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		IsWorkingDay: true,
		Slots:        slots,
	}, nil
}

// nonWorkingDayResponse формирует пустой ответ для нерабочего дня
// Нерабочий день не является ошибкой запроса доступности
func nonWorkingDayResponse(req *Request) *Response {
	return &Response{
		Date:         req.Date,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		IsWorkingDay: false,
		Reason:       ReasonNonWorkingDay,
		Slots:        []Slot{},
	}
}
