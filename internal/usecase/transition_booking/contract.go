package transition_booking

import (
	"context"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusCAS(
		ctx context.Context,
		id int64,
		expected domain.BookingStatus,
		newStatus domain.BookingStatus,
		fields bookingRepo.StatusFields,
	) error
}

// CatalogClient интерфейс клиента каталога мерчантов
type CatalogClient interface {
	GetMerchant(ctx context.Context, merchantID int64) (*catalogservice.Merchant, error)
}

// CodeGenerator интерфейс генератора кодов подтверждения
type CodeGenerator interface {
	Generate() (string, error)
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
