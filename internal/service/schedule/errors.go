package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание мерчанта не найдено
	ErrScheduleNotFound = errors.New("schedule.service: schedule not found")

	// ErrMerchantNotFound возвращается, когда мерчант не найден
	ErrMerchantNotFound = errors.New("schedule.service: merchant not found")

	// ErrAccessDenied возвращается, когда актор не управляет мерчантом
	ErrAccessDenied = errors.New("schedule.service: access denied")

	// ErrInvalidInput возвращается при некорректных данных расписания
	ErrInvalidInput = errors.New("schedule.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
