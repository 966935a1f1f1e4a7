package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAccessDenied возвращается, когда у актора нет доступа к бронированию
	ErrAccessDenied = errors.New("bookings.service: access denied")

	// ErrMerchantNotFound возвращается, когда мерчант не найден
	ErrMerchantNotFound = errors.New("bookings.service: merchant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
