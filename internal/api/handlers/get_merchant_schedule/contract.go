package get_merchant_schedule

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

type ScheduleService interface {
	Get(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
