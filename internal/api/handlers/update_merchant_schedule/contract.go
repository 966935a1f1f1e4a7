package update_merchant_schedule

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

type ScheduleService interface {
	Update(ctx context.Context, actorID int64, config *domain.MerchantScheduleConfig) (*domain.MerchantScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
