package handlers

import (
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

// BookingResponse общая HTTP модель бронирования, используется всеми handlers
type BookingResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	MerchantID         int64   `json:"merchantId"`
	ServiceName        string  `json:"serviceName"`
	ServicePrice       float64 `json:"servicePrice"`
	DurationMinutes    int     `json:"durationMinutes"`
	BookingDate        string  `json:"bookingDate"`
	TimeSlot           string  `json:"timeSlot"`
	Status             string  `json:"status"`
	VerificationCode   *string `json:"verificationCode,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	VerifiedAt         *string `json:"verifiedAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// BookingListResponse HTTP модель списка бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		MerchantID:         b.MerchantID,
		ServiceName:        b.Service.Name,
		ServicePrice:       b.Service.Price,
		DurationMinutes:    b.Service.DurationMinutes,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TimeSlot:           b.TimeSlot.String(),
		Status:             string(b.Status),
		VerificationCode:   b.VerificationCode,
		CancellationReason: b.CancellationReason,
		Notes:              b.Notes,
		ConfirmedAt:        formatTimePtr(b.ConfirmedAt),
		VerifiedAt:         formatTimePtr(b.VerifiedAt),
		CompletedAt:        formatTimePtr(b.CompletedAt),
		CancelledAt:        formatTimePtr(b.CancelledAt),
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledBy != nil {
		actor := string(*b.CancelledBy)
		resp.CancelledBy = &actor
	}

	return resp
}

// FromDomainBookings конвертирует список доменных моделей в HTTP response
func FromDomainBookings(items []*domain.Booking) *BookingListResponse {
	bookings := make([]*BookingResponse, 0, len(items))
	for _, b := range items {
		bookings = append(bookings, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
