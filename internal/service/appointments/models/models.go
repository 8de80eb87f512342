package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	BarberID           uuid.UUID  `json:"barberId"`
	ClientID           int64      `json:"clientId"`
	ServiceID          int64      `json:"serviceId"`
	StartsAt           time.Time  `json:"startsAt"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	ServiceName        string     `json:"serviceName"`
	ServicePrice       float64    `json:"servicePrice"`
	ClientName         string     `json:"clientName"`
	ClientPhone        string     `json:"clientPhone"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		BarberID:           appt.BarberID,
		ClientID:           appt.ClientID,
		ServiceID:          appt.ServiceID,
		StartsAt:           appt.StartsAt,
		DurationMinutes:    appt.DurationMinutes,
		Status:             string(appt.Status),
		ServiceName:        appt.ServiceName,
		ServicePrice:       appt.ServicePrice,
		ClientName:         appt.ClientName,
		ClientPhone:        appt.ClientPhone,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных записей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]AppointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		items = append(items, *FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}
