package create_block

import (
	"context"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlock(ctx context.Context, barberID uuid.UUID, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
