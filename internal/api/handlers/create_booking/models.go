package create_booking

import (
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	createBooking "github.com/m04kA/LSB-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MerchantID  int64   `json:"merchantId"`
	ServiceID   int64   `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2026-09-15"
	TimeSlot    string  `json:"timeSlot"`    // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// userID берется из контекста авторизации, requestID из заголовка Idempotency-Key
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, requestID *string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		MerchantID: r.MerchantID,
		ServiceID:  r.ServiceID,
		Date:       bookingDate,
		TimeSlot:   timeSlot,
		Notes:      r.Notes,
		RequestID:  requestID,
	}, nil
}
