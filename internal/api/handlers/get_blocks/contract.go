package get_blocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBlocks(ctx context.Context, barberID uuid.UUID) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
