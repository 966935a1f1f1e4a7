package cancel_booking

import (
	"fmt"

	transitionBooking "github.com/m04kA/LSB-BookingService/internal/usecase/transition_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	// "user" или "merchant"; пустое значение трактуется как "user"
	ActorRole          string  `json:"actorRole,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, actorID int64) (*transitionBooking.Request, error) {
	var role transitionBooking.ActorRole
	switch r.ActorRole {
	case "", string(transitionBooking.RoleUser):
		role = transitionBooking.RoleUser
	case string(transitionBooking.RoleMerchant):
		role = transitionBooking.RoleMerchant
	default:
		return nil, fmt.Errorf("unknown actor role %q", r.ActorRole)
	}

	return &transitionBooking.Request{
		BookingID: bookingID,
		Event:     transitionBooking.EventCancel,
		ActorRole: role,
		ActorID:   actorID,
		Reason:    r.CancellationReason,
	}, nil
}
