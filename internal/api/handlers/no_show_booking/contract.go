package no_show_booking

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	transitionBooking "github.com/m04kA/LSB-BookingService/internal/usecase/transition_booking"
)

type TransitionBookingUseCase interface {
	Execute(ctx context.Context, req *transitionBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
