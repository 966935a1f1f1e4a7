package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByMerchantWithFilter(ctx context.Context, filter domain.MerchantBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний мерчантов
type ScheduleRepository interface {
	GetByMerchantID(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error)
}

// CatalogClient интерфейс клиента каталога мерчантов
type CatalogClient interface {
	GetMerchant(ctx context.Context, merchantID int64) (*catalogservice.Merchant, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
