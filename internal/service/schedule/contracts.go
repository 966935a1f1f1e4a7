package schedule

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний мерчантов
type ScheduleRepository interface {
	GetByMerchantID(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.MerchantScheduleConfig) (*domain.MerchantScheduleConfig, error)
}

// CatalogClient интерфейс клиента каталога мерчантов
type CatalogClient interface {
	GetMerchant(ctx context.Context, merchantID int64) (*catalogservice.Merchant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
