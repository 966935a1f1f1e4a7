package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
// Композиция чистого расчета слотов по расписанию и занятости из хранилища
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: merchant=%d, date=%s",
		req.MerchantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.MerchantID <= 0 {
		return nil, fmt.Errorf("%w: merchantID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование мерчанта
	if _, err := uc.catalog.GetMerchant(ctx, req.MerchantID); err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			uc.logger.Warn("GetAvailableSlots: merchant id=%d not found", req.MerchantID)
			return nil, ErrMerchantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get merchant id=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: failed to get merchant: %v", ErrInternal, err)
	}

	// 4. Получаем расписание мерчанта
	schedule, err := uc.scheduleRepo.GetByMerchantID(ctx, req.MerchantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule not configured for merchant id=%d", req.MerchantID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Вычисляем слоты расписания на дату
	slotStarts, err := domain.ComputeSlots(schedule, req.Date, now)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDateInPast):
			uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
			return nil, ErrInvalidDate
		case errors.Is(err, domain.ErrDateTooFarInFuture):
			uc.logger.Warn("GetAvailableSlots: date %s is beyond the booking window", req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.AdvanceBookingDays)
		default:
			uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
	}

	// Выходной, праздник - пустой список слотов
	if len(slotStarts) == 0 {
		uc.logger.Info("GetAvailableSlots: merchant id=%d is closed on %s",
			req.MerchantID, req.Date.Format(domain.DateFormat))
		return &Response{
			MerchantID: req.MerchantID,
			Date:       req.Date,
			Slots:      []domain.AvailableSlot{},
		}, nil
	}

	// 6. Получаем занимающие бронирования на эту дату
	bookings, err := uc.bookingRepo.GetByMerchantWithFilter(ctx, domain.MerchantBookingsFilter{
		MerchantID: req.MerchantID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Вычисляем остаточную вместимость каждого слота
	slots := calculateRemainingCapacity(slotStarts, schedule, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots for merchant=%d, date=%s",
		len(slots), req.MerchantID, req.Date.Format(domain.DateFormat))

	return &Response{
		MerchantID: req.MerchantID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

// calculateRemainingCapacity считает занятость каждого слота по бронированиям.
// Слоты дискретны и одинаковой длительности, поэтому занятость считается
// по точному совпадению времени начала
func calculateRemainingCapacity(
	slotStarts []types.TimeString,
	schedule *domain.MerchantScheduleConfig,
	bookings []*domain.Booking,
) []domain.AvailableSlot {
	occupancy := make(map[types.TimeString]int, len(slotStarts))
	for _, b := range bookings {
		if !b.IsOccupying() {
			continue
		}
		occupancy[b.TimeSlot]++
	}

	slots := make([]domain.AvailableSlot, len(slotStarts))
	for i, start := range slotStarts {
		remaining := schedule.CapacityPerSlot - occupancy[start]
		if remaining < 0 {
			remaining = 0
		}
		slots[i] = domain.AvailableSlot{
			StartTime:         start,
			DurationMinutes:   schedule.SlotDurationMinutes,
			RemainingCapacity: remaining,
			TotalCapacity:     schedule.CapacityPerSlot,
		}
	}

	return slots
}
