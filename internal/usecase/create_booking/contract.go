package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByRequestID(ctx context.Context, requestID string) (*domain.Booking, error)
	CountOccupying(ctx context.Context, merchantID int64, date time.Time, slot types.TimeString) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний мерчантов
type ScheduleRepository interface {
	GetByMerchantID(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error)
}

// CatalogClient интерфейс клиента каталога мерчантов
type CatalogClient interface {
	GetMerchant(ctx context.Context, merchantID int64) (*catalogservice.Merchant, error)
	GetService(ctx context.Context, merchantID, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
