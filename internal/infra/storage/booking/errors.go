package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateBooking возвращается при вставке бронирования с уже существующим
	// идентификатором или ключом идемпотентности
	ErrDuplicateBooking = errors.New("booking.repository: booking already exists")

	// ErrStaleStatus возвращается, когда compare-and-swap статуса не прошел:
	// текущий статус бронирования отличается от ожидаемого
	ErrStaleStatus = errors.New("booking.repository: booking status changed concurrently")

	// ErrCodeMismatch возвращается, когда код подтверждения не совпал при списании
	ErrCodeMismatch = errors.New("booking.repository: verification code mismatch")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
