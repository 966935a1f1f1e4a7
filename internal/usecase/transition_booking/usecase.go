package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/ptr"
)

// UseCase use case переходов жизненного цикла бронирования
//
// Каждый переход: чтение -> проверка предусловий -> compare-and-swap
// статуса с текущим статусом в качестве ожидаемого. Проигранная гонка
// возвращается как ErrConflict и никогда не повторяется со старыми данными.
//
// Освобождение слота не требует отдельного счетчика: занятость выводится
// из таблицы бронирований, и переход в конечный статус перестает учитываться
// тем же атомарным обновлением
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogClient
	codes        CodeGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	codes CodeGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		codes:        codes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход жизненного цикла
// Возвращает бронирование в новом статусе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("TransitionBooking: booking=%d, event=%s, role=%s, actor=%d",
		req.BookingID, req.Event, req.ActorRole, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	// 1. Читаем текущее состояние бронирования
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransitionBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Проверяем права актора на событие
	if err := uc.checkActor(ctx, booking, req); err != nil {
		return nil, err
	}

	// 3. Определяем целевой статус и проверяем легальность перехода
	target, err := targetStatus(req.Event)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(booking.Status, target) {
		uc.logger.Warn("TransitionBooking: %s is not allowed from status=%s for booking id=%d",
			req.Event, booking.Status, req.BookingID)
		return nil, fmt.Errorf("%w: cannot %s a booking in status %s",
			ErrInvalidTransition, req.Event, booking.Status)
	}

	// 4. Собираем сопутствующие поля перехода
	now := uc.timeProvider.Now()
	fields := bookingRepo.StatusFields{UpdatedAt: now}

	switch req.Event {
	case EventConfirm:
		// Выдача одноразового кода; повторное подтверждение невозможно
		// (confirmed -> confirmed не является легальным переходом)
		code, err := uc.codes.Generate()
		if err != nil {
			uc.logger.Error("TransitionBooking: failed to generate code: %v", err)
			return nil, fmt.Errorf("%w: failed to generate verification code: %v", ErrInternal, err)
		}
		fields.SetCode = &code
		fields.CodeIssuedAt = &now
		fields.ConfirmedAt = &now

	case EventCancel:
		fields.ClearCode = true
		fields.CancelledAt = &now
		fields.CancellationReason = req.Reason
		if req.ActorRole == RoleMerchant {
			fields.CancelledBy = ptr.Ptr(domain.CancelledByMerchant)
		} else {
			fields.CancelledBy = ptr.Ptr(domain.CancelledByUser)
		}

	case EventNoShow:
		// Выход из confirmed аннулирует код как побочный эффект смены статуса
		fields.ClearCode = true

	case EventComplete:
		fields.CompletedAt = &now
	}

	// 5. Compare-and-swap с текущим статусом в качестве ожидаемого
	err = uc.bookingRepo.UpdateStatusCAS(ctx, booking.ID, booking.Status, target, fields)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			uc.logger.Warn("TransitionBooking: lost CAS race on booking id=%d (expected=%s)",
				booking.ID, booking.Status)
			return nil, ErrConflict
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// 6. Перечитываем бронирование в новом состоянии
	updated, err := uc.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to reread booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reread booking: %v", ErrInternal, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%d %s -> %s", booking.ID, booking.Status, updated.Status)
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
	if req.ActorRole != RoleUser && req.ActorRole != RoleMerchant {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.ActorRole)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// targetStatus возвращает целевой статус для события
func targetStatus(event Event) (domain.BookingStatus, error) {
	switch event {
	case EventConfirm:
		return domain.StatusConfirmed, nil
	case EventCancel:
		return domain.StatusCancelled, nil
	case EventNoShow:
		return domain.StatusNoShow, nil
	case EventComplete:
		return domain.StatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
}

// checkActor проверяет, что актор имеет право на событие:
// пользователь может только отменить собственное бронирование,
// события мерчанта доступны менеджерам мерчанта
func (uc *UseCase) checkActor(ctx context.Context, booking *domain.Booking, req *Request) error {
	if req.ActorRole == RoleUser {
		if req.Event != EventCancel {
			uc.logger.Warn("TransitionBooking: event %s is not available to users", req.Event)
			return ErrAccessDenied
		}
		if booking.UserID != req.ActorID {
			uc.logger.Warn("TransitionBooking: user=%d does not own booking id=%d", req.ActorID, booking.ID)
			return ErrAccessDenied
		}
		return nil
	}

	merchant, err := uc.catalog.GetMerchant(ctx, booking.MerchantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			uc.logger.Warn("TransitionBooking: merchant id=%d not found", booking.MerchantID)
			return ErrAccessDenied
		}
		uc.logger.Error("TransitionBooking: failed to get merchant id=%d: %v", booking.MerchantID, err)
		return fmt.Errorf("%w: failed to get merchant: %v", ErrInternal, err)
	}

	if !merchant.IsManagedBy(req.ActorID) {
		uc.logger.Warn("TransitionBooking: actor=%d is not a manager of merchant=%d",
			req.ActorID, booking.MerchantID)
		return ErrAccessDenied
	}

	return nil
}
