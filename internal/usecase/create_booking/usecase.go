package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для создания бронирования
//
// Точка допуска: проверка занятости слота и вставка выполняются в одной
// сериализуемой транзакции, поэтому при любом числе конкурентных запросов
// на один слот успешных созданий будет не больше capacity_per_slot
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: user=%d, merchant=%d, service=%d, date=%s, slot=%s",
		req.UserID, req.MerchantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Идемпотентность: если по этому ключу уже создано бронирование,
	// возвращаем его вместо повторного создания
	if req.RequestID != nil {
		existing, err := uc.bookingRepo.GetByRequestID(ctx, *req.RequestID)
		if err == nil {
			uc.logger.Info("CreateBooking: request_id=%s already mapped to booking id=%d",
				*req.RequestID, existing.ID)
			return existing, nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check request_id=%s: %v", *req.RequestID, err)
			return nil, fmt.Errorf("%w: failed to check request id: %v", ErrInternal, err)
		}
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Проверяем существование мерчанта
	if _, err := uc.catalog.GetMerchant(ctx, req.MerchantID); err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			uc.logger.Warn("CreateBooking: merchant id=%d not found", req.MerchantID)
			return nil, ErrMerchantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get merchant id=%d: %v", req.MerchantID, err)
		return nil, fmt.Errorf("%w: failed to get merchant: %v", ErrInternal, err)
	}

	// 5. Получаем услугу - её снимок копируется в бронирование,
	// чтобы последующие правки каталога не меняли историю
	service, err := uc.catalog.GetService(ctx, req.MerchantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 6. Проверка занятости и вставка - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем расписание мерчанта
		schedule, err := uc.scheduleRepo.GetByMerchantID(txCtx, req.MerchantID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Warn("CreateBooking: schedule not configured for merchant id=%d", req.MerchantID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
			// Цепочка ошибки сохраняется: txmanager различает конфликт сериализации
			return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}

		// 6.2. Проверяем, что слот существует в расписании на эту дату
		if err := validateSlotInSchedule(schedule, req, now); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 6.3. Считаем занятость слота (выборка блокируется FOR UPDATE)
		occupancy, err := uc.bookingRepo.CountOccupying(txCtx, req.MerchantID, req.Date, req.TimeSlot)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count occupancy: %v", err)
			return fmt.Errorf("%w: failed to count occupancy: %w", ErrInternal, err)
		}

		if occupancy >= schedule.CapacityPerSlot {
			uc.logger.Warn("CreateBooking: slot %s is full, %d/%d spots taken",
				req.TimeSlot, occupancy, schedule.CapacityPerSlot)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d spots taken",
			req.TimeSlot, occupancy, schedule.CapacityPerSlot)

		// 6.4. Создаем бронирование со снимком услуги
		booking := &domain.Booking{
			RequestID:   req.RequestID,
			MerchantID:  req.MerchantID,
			UserID:      req.UserID,
			BookingDate: req.Date,
			TimeSlot:    req.TimeSlot,
			Status:      domain.StatusPending,
			Notes:       req.Notes,
			Service: domain.ServiceSnapshot{
				Name:            service.Name,
				Price:           servicePrice(service),
				DurationMinutes: schedule.SlotDurationMinutes,
			},
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Гонка по ключу идемпотентности: параллельный запрос успел первым,
		// возвращаем созданное им бронирование
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) && req.RequestID != nil {
			existing, getErr := uc.bookingRepo.GetByRequestID(ctx, *req.RequestID)
			if getErr == nil {
				uc.logger.Info("CreateBooking: lost idempotency race, returning booking id=%d", existing.ID)
				return existing, nil
			}
		}
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			uc.logger.Error("CreateBooking: duplicate booking: %v", err)
			return nil, fmt.Errorf("%w: duplicate booking: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return result, nil
}

// validateSlotInSchedule проверяет, что запрошенный слот входит в расписание
// мерчанта на указанную дату, различая закрытый день и несуществующий слот
func validateSlotInSchedule(schedule *domain.MerchantScheduleConfig, req *Request, now time.Time) error {
	slots, err := domain.ComputeSlots(schedule, req.Date, now)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDateInPast):
			return ErrInvalidDate
		case errors.Is(err, domain.ErrDateTooFarInFuture):
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.AdvanceBookingDays)
		default:
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
	}

	if len(slots) == 0 {
		return ErrMerchantClosed
	}

	for _, s := range slots {
		if s == req.TimeSlot {
			return nil
		}
	}
	return ErrInvalidTimeSlot
}

// servicePrice извлекает цену из услуги каталога
// Если цена не указана (nil), возвращает 0.0
func servicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
