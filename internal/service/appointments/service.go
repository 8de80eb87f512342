package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	appointmentRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/appointment"
	"github.com/n1kprav/BRB-BookingService/internal/service/appointments/models"
)

// Service сервис управления записями барбера
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Барбер может видеть только собственные записи
func (s *Service) GetByID(ctx context.Context, id int64, barberID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for barber=%s", id, barberID)

	appt, err := s.getOwned(ctx, id, barberID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetBarberAppointments получает записи барбера на указанную дату
// Отмененные записи включаются: барберу важна полная картина дня
func (s *Service) GetBarberAppointments(ctx context.Context, barberID uuid.UUID, date time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBarberAppointments: barber=%s, date=%s", barberID, date.Format(domain.DateFormat))

	bounds := domain.DayBounds(date)

	appointments, err := s.appointmentRepo.GetByBarberAndRange(ctx, barberID, bounds.Start, bounds.End, true)
	if err != nil {
		s.logger.Error("GetBarberAppointments: repository error for barber=%s: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberAppointments: fetched %d appointments for barber=%s", len(appointments), barberID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, barberID uuid.UUID, reason string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d for barber=%s", id, barberID)

	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	appt, err := s.getOwned(ctx, id, barberID)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is in terminal status %s", id, appt.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(updated), nil
}

// UpdateStatus переводит запись в новый статус
// Допустимость перехода определяется машиной статусов записи;
// дополнительно COMPLETED требует, чтобы запись уже началась
func (s *Service) UpdateStatus(ctx context.Context, id int64, barberID uuid.UUID, statusStr string) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, barber=%s, status=%s", id, barberID, statusStr)

	statusStr = strings.ToUpper(strings.TrimSpace(statusStr))
	if !domain.IsValidStatus(statusStr) {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", statusStr, id)
		return nil, ErrInvalidStatus
	}
	status := domain.AppointmentStatus(statusStr)

	appt, err := s.getOwned(ctx, id, barberID)
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			appt.Status, status, id)
		return nil, ErrInvalidTransition
	}

	if status == domain.StatusCompleted && s.timeProvider.Now().Before(appt.StartsAt) {
		s.logger.Warn("UpdateStatus: appointment id=%d has not started yet, cannot complete", id)
		return nil, ErrInvalidTransition
	}

	// Отмена идет через Cancel, чтобы зафиксировать момент отмены
	if status == domain.StatusCancelled {
		err = s.appointmentRepo.Cancel(ctx, id, "")
	} else {
		err = s.appointmentRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to status %s", id, status)
	return models.FromDomainAppointment(updated), nil
}

// getOwned достает запись и проверяет, что она принадлежит барберу
func (s *Service) getOwned(ctx context.Context, id int64, barberID uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getOwned: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getOwned: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwned - repository error: %v", ErrInternal, err)
	}

	if appt.BarberID != barberID {
		s.logger.Warn("getOwned: access denied for barber=%s to appointment id=%d", barberID, id)
		return nil, ErrAccessDenied
	}

	return appt, nil
}
