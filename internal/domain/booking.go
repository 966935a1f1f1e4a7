package domain

import (
	"time"

	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusOngoing   BookingStatus = "ongoing"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// CancelActor identifies who cancelled a booking
type CancelActor string

const (
	CancelledByUser     CancelActor = "user"
	CancelledByMerchant CancelActor = "merchant"
)

// ServiceSnapshot is a value copy of the booked service taken at creation time.
// Later edits to the merchant's service catalog never change historical bookings.
type ServiceSnapshot struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// Booking represents a service booking in the system
type Booking struct {
	ID         int64
	RequestID  *string // caller-supplied idempotency key, at most one booking per key
	MerchantID int64
	UserID     int64

	Service     ServiceSnapshot
	BookingDate time.Time
	TimeSlot    types.TimeString
	Status      BookingStatus

	// Present only while the booking is confirmed
	VerificationCode *string
	CodeIssuedAt     *time.Time

	CancelledBy        *CancelActor
	CancellationReason *string
	Notes              *string

	ConfirmedAt *time.Time
	VerifiedAt  *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking counts against slot capacity
func (b *Booking) IsOccupying() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusOngoing
}

// IsTerminal returns true if no further transition is defined from the booking's status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransition reports whether moving a booking from status `from`
// to status `to` is a legal state machine transition
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusOngoing || to == StatusCancelled || to == StatusNoShow
	case StatusOngoing:
		return to == StatusCompleted
	default:
		// completed, cancelled and no_show are terminal
		return false
	}
}

// MerchantBookingsFilter фильтр для получения бронирований мерчанта
type MerchantBookingsFilter struct {
	MerchantID      int64
	StartDate       *time.Time        // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time        // Конец периода (опционально)
	TimeSlot        *types.TimeString // Конкретный слот (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	IncludeTerminal bool              // Включать ли завершенные и отмененные бронирования
}
