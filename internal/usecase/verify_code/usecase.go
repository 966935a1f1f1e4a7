package verify_code

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// Request модель запроса на подтверждение кода
type Request struct {
	BookingID int64
	Code      string
	ActorID   int64 // менеджер мерчанта, принимающий клиента
}

// UseCase use case проверки одноразового кода: переводит бронирование
// confirmed -> ongoing, списывая код
//
// Списание выполняется одним атомарным обновлением с условием на статус
// и код, поэтому повторная проверка того же кода неизбежно не совпадает -
// код одноразовый без дополнительных блокировок
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogClient
	codeTTL      time.Duration // 0 отключает проверку по часам
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	codeTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		codeTTL:      codeTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет код и начинает обслуживание
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("VerifyCode: booking=%d, actor=%d", req.BookingID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyCode: validation failed: %v", err)
		return nil, err
	}

	// 1. Читаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("VerifyCode: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("VerifyCode: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Проверяем, что актор управляет мерчантом
	if err := uc.checkManagerAccess(ctx, booking.MerchantID, req.ActorID); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 3. Проверка времени жизни кода (если включена)
	// Совпавший, но просроченный код - отдельная ошибка для UX
	if uc.codeTTL > 0 &&
		booking.Status == domain.StatusConfirmed &&
		booking.CodeIssuedAt != nil &&
		booking.VerificationCode != nil &&
		*booking.VerificationCode == req.Code &&
		now.After(booking.CodeIssuedAt.Add(uc.codeTTL)) {
		uc.logger.Warn("VerifyCode: code for booking id=%d expired (issued at %s)",
			booking.ID, booking.CodeIssuedAt.Format(time.RFC3339))
		return nil, ErrCodeExpired
	}

	// 4. Атомарно списываем код и переводим бронирование в ongoing
	err = uc.bookingRepo.ConsumeCode(ctx, req.BookingID, req.Code, now)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStaleStatus):
			// Бронирование покинуло confirmed - код аннулирован сменой статуса
			uc.logger.Warn("VerifyCode: booking id=%d is no longer confirmed", req.BookingID)
			return nil, ErrCodeInvalid
		case errors.Is(err, bookingRepo.ErrCodeMismatch):
			uc.logger.Warn("VerifyCode: code mismatch for booking id=%d", req.BookingID)
			return nil, ErrCodeInvalid
		default:
			uc.logger.Error("VerifyCode: failed to consume code: %v", err)
			return nil, fmt.Errorf("%w: failed to consume code: %v", ErrInternal, err)
		}
	}

	// 5. Перечитываем бронирование в новом состоянии
	updated, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("VerifyCode: failed to reread booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reread booking: %v", ErrInternal, err)
	}

	uc.logger.Info("VerifyCode: booking id=%d is now ongoing", updated.ID)
	return updated, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if len(req.Code) != domain.VerificationCodeLength {
		return fmt.Errorf("%w: code must be %d digits", ErrInvalidInput, domain.VerificationCodeLength)
	}
	for _, r := range req.Code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: code must be numeric", ErrInvalidInput)
		}
	}
	return nil
}

// checkManagerAccess проверяет, что актор является менеджером мерчанта
func (uc *UseCase) checkManagerAccess(ctx context.Context, merchantID, actorID int64) error {
	merchant, err := uc.catalog.GetMerchant(ctx, merchantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			uc.logger.Warn("VerifyCode: merchant id=%d not found", merchantID)
			return ErrAccessDenied
		}
		uc.logger.Error("VerifyCode: failed to get merchant id=%d: %v", merchantID, err)
		return fmt.Errorf("%w: failed to get merchant: %v", ErrInternal, err)
	}

	if !merchant.IsManagedBy(actorID) {
		uc.logger.Warn("VerifyCode: actor=%d is not a manager of merchant=%d", actorID, merchantID)
		return ErrAccessDenied
	}

	return nil
}
