package bookings

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByMerchantWithFilter(ctx context.Context, filter domain.MerchantBookingsFilter) ([]*domain.Booking, error)
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
