package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

// Service сервис для работы с расписаниями мерчантов
type Service struct {
	scheduleRepo ScheduleRepository
	catalog      CatalogClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	catalog CatalogClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// Get получает расписание мерчанта
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error) {
	s.logger.Info("Get: fetching schedule for merchant=%d", merchantID)

	config, err := s.scheduleRepo.GetByMerchantID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: schedule not found for merchant=%d", merchantID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for merchant=%d: %v", merchantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return config, nil
}

// Update создает или обновляет расписание мерчанта
// Доступно только менеджерам мерчанта.
// Изменение capacity_per_slot действует только на будущие расчеты -
// уже принятые бронирования не пересматриваются
func (s *Service) Update(ctx context.Context, actorID int64, config *domain.MerchantScheduleConfig) (*domain.MerchantScheduleConfig, error) {
	s.logger.Info("Update: updating schedule for merchant=%d by actor=%d", config.MerchantID, actorID)

	// 1. Валидируем расписание
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Update: validation failed for merchant=%d: %v", config.MerchantID, err)
		return nil, err
	}

	// 2. Проверяем права доступа
	merchant, err := s.catalog.GetMerchant(ctx, config.MerchantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMerchantNotFound) {
			s.logger.Warn("Update: merchant id=%d not found", config.MerchantID)
			return nil, ErrMerchantNotFound
		}
		s.logger.Error("Update: failed to get merchant id=%d: %v", config.MerchantID, err)
		return nil, fmt.Errorf("%w: Update - failed to get merchant: %v", ErrInternal, err)
	}
	if !merchant.IsManagedBy(actorID) {
		s.logger.Warn("Update: actor=%d is not a manager of merchant=%d", actorID, config.MerchantID)
		return nil, ErrAccessDenied
	}

	// 3. Сохраняем
	updated, err := s.scheduleRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Update: repository error for merchant=%d: %v", config.MerchantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: schedule id=%d saved for merchant=%d", updated.ID, updated.MerchantID)
	return updated, nil
}

// validateConfig проверяет бизнес-инварианты расписания
func validateConfig(config *domain.MerchantScheduleConfig) error {
	if config.MerchantID <= 0 {
		return fmt.Errorf("%w: merchantID must be positive", ErrInvalidInput)
	}

	if err := config.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openingTime: %v", ErrInvalidInput, err)
	}
	if err := config.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closingTime: %v", ErrInvalidInput, err)
	}
	if !config.OpeningTime.IsBefore(config.ClosingTime) {
		return fmt.Errorf("%w: openingTime must be before closingTime", ErrInvalidInput)
	}

	if len(config.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidInput)
	}
	seen := make(map[int]bool, len(config.WorkingDays))
	for _, d := range config.WorkingDays {
		if seen[int(d)] {
			return fmt.Errorf("%w: duplicate working day %s", ErrInvalidInput, d)
		}
		seen[int(d)] = true
	}

	if !domain.IsAllowedSlotDuration(config.SlotDurationMinutes) {
		return fmt.Errorf("%w: slotDurationMinutes must be one of %v",
			ErrInvalidInput, domain.AllowedSlotDurations)
	}

	if config.CapacityPerSlot < domain.MinCapacityPerSlot || config.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays || config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
