package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	blockRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/block"
	"github.com/n1kprav/BRB-BookingService/internal/service/schedule/models"
)

// Service сервис управления недельным расписанием и блокировками
type Service struct {
	scheduleRepo ScheduleRepository
	blockRepo    BlockRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		blockRepo:    blockRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание барбера
func (s *Service) GetSchedule(ctx context.Context, barberID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for barber=%s", barberID)

	schedules, err := s.scheduleRepo.GetAllByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for barber=%s: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(barberID, schedules), nil
}

// UpdateSchedule обновляет недельное расписание барбера
// Все переданные дни применяются в одной транзакции: расписание не может
// оказаться обновленным наполовину
func (s *Service) UpdateSchedule(ctx context.Context, barberID uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: barber=%s, days=%d", barberID, len(req.Days))

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(req.Days))
	for i := range req.Days {
		day := &req.Days[i]
		if err := day.Validate(); err != nil {
			s.logger.Warn("UpdateSchedule: day validation failed for barber=%s: %v", barberID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate dayOfWeek=%d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i := range req.Days {
			if _, err := s.scheduleRepo.Upsert(txCtx, req.Days[i].ToDomain(barberID)); err != nil {
				s.logger.Error("UpdateSchedule: failed to upsert day=%d for barber=%s: %v",
					req.Days[i].DayOfWeek, barberID, err)
				return fmt.Errorf("%w: UpdateSchedule - upsert error: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSchedule: schedule updated for barber=%s", barberID)
	return s.GetSchedule(ctx, barberID)
}

// CreateBlock создает ручную блокировку расписания
func (s *Service) CreateBlock(ctx context.Context, barberID uuid.UUID, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: barber=%s, starts_at=%s, ends_at=%s",
		barberID, req.StartsAt, req.EndsAt)

	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return nil, fmt.Errorf("%w: startsAt and endsAt are required", ErrInvalidInput)
	}

	if !req.EndsAt.After(req.StartsAt) {
		s.logger.Warn("CreateBlock: invalid range for barber=%s", barberID)
		return nil, ErrInvalidTimeRange
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	blk := &domain.ScheduleBlock{
		BarberID: barberID,
		StartsAt: req.StartsAt.UTC(),
		EndsAt:   req.EndsAt.UTC(),
		Reason:   req.Reason,
	}

	created, err := s.blockRepo.Create(ctx, blk)
	if err != nil {
		s.logger.Error("CreateBlock: repository error for barber=%s: %v", barberID, err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: created block id=%d for barber=%s", created.ID, barberID)
	return models.FromDomainBlock(created), nil
}

// GetBlocks получает еще не закончившиеся блокировки барбера
func (s *Service) GetBlocks(ctx context.Context, barberID uuid.UUID) (*models.BlockListResponse, error) {
	s.logger.Info("GetBlocks: fetching blocks for barber=%s", barberID)

	blocks, err := s.blockRepo.GetActualByBarber(ctx, barberID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetBlocks: repository error for barber=%s: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// DeleteBlock удаляет блокировку барбера
func (s *Service) DeleteBlock(ctx context.Context, barberID uuid.UUID, blockID int64) error {
	s.logger.Info("DeleteBlock: barber=%s, block=%d", barberID, blockID)

	if err := s.blockRepo.Delete(ctx, blockID, barberID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found for barber=%s", blockID, barberID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: deleted block id=%d for barber=%s", blockID, barberID)
	return nil
}
