package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// Service сервис чтения бронирований: карточка и истории
type Service struct {
	bookingRepo BookingRepository
	catalog     CatalogClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и менеджерам мерчанта
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*domain.Booking, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	return booking, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, userID int64, status *string) ([]*domain.Booking, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	domainStatus, err := parseStatus(status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status %q for user=%d", *status, userID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), userID)
	return bookings, nil
}

// MerchantBookingsRequest параметры выборки бронирований мерчанта
type MerchantBookingsRequest struct {
	MerchantID      int64
	ActorID         int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeTerminal bool
}

// GetMerchantBookings получает бронирования мерчанта с фильтрацией
// Доступно только менеджерам мерчанта
func (s *Service) GetMerchantBookings(ctx context.Context, req *MerchantBookingsRequest) ([]*domain.Booking, error) {
	s.logger.Info("GetMerchantBookings: merchant=%d, actor=%d", req.MerchantID, req.ActorID)

	if err := s.checkManagerAccess(ctx, req.MerchantID, req.ActorID); err != nil {
		return nil, err
	}

	domainStatus, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetMerchantBookings: invalid status %q for merchant=%d", *req.Status, req.MerchantID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByMerchantWithFilter(ctx, domain.MerchantBookingsFilter{
		MerchantID:      req.MerchantID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          domainStatus,
		IncludeTerminal: req.IncludeTerminal,
	})
	if err != nil {
		s.logger.Error("GetMerchantBookings: repository error for merchant=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: GetMerchantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMerchantBookings: fetched %d bookings for merchant=%d", len(bookings), req.MerchantID)
	return bookings, nil
}

// parseStatus конвертирует статус из строки в domain.BookingStatus
func parseStatus(status *string) (*domain.BookingStatus, error) {
	if status == nil {
		return nil, nil
	}
	s := domain.BookingStatus(*status)
	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusOngoing,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow:
		return &s, nil
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
	}
}

// checkBookingAccess проверяет, что актор имеет доступ к бронированию:
// владелец или менеджер мерчанта
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorID int64) error {
	if booking.UserID == actorID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.MerchantID, actorID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что актор является менеджером мерчанта
func (s *Service) checkManagerAccess(ctx context.Context, merchantID, actorID int64) error {
	merchant, err := s.catalog.GetMerchant(ctx, merchantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			s.logger.Warn("checkManagerAccess: merchant id=%d not found", merchantID)
			return ErrMerchantNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get merchant id=%d: %v", merchantID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get merchant: %v", ErrInternal, err)
	}

	if !merchant.IsManagedBy(actorID) {
		s.logger.Warn("checkManagerAccess: actor=%d is not a manager of merchant=%d", actorID, merchantID)
		return ErrAccessDenied
	}

	return nil
}
