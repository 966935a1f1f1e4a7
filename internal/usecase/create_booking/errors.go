package create_booking

import "errors"

var (
	// ErrMerchantNotFound возвращается, когда мерчант не найден
	ErrMerchantNotFound = errors.New("create_booking: merchant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrScheduleNotFound возвращается, когда у мерчанта не настроено расписание
	ErrScheduleNotFound = errors.New("create_booking: merchant schedule is not configured")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrMerchantClosed возвращается, когда мерчант не работает в указанную дату
	ErrMerchantClosed = errors.New("create_booking: merchant is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не является началом слота расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotFull возвращается, когда вместимость слота исчерпана
	// Вызывающая сторона должна перечитать доступные слоты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
