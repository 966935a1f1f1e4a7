package verify_booking

import (
	"context"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	verifyCode "github.com/m04kA/LSB-BookingService/internal/usecase/verify_code"
)

type VerifyCodeUseCase interface {
	Execute(ctx context.Context, req *verifyCode.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
