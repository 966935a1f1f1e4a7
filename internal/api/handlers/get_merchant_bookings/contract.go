package get_merchant_bookings

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/internal/service/bookings"
)

type BookingService interface {
	GetMerchantBookings(ctx context.Context, req *bookings.MerchantBookingsRequest) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
