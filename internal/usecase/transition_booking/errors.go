package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrInvalidTransition возвращается, когда событие не определено
	// для текущего статуса бронирования
	ErrInvalidTransition = errors.New("transition_booking: transition is not allowed from current status")

	// ErrConflict возвращается при проигранной гонке compare-and-swap:
	// статус бронирования изменился между чтением и записью.
	// Вызывающая сторона должна перечитать бронирование и повторить с актуальным статусом
	ErrConflict = errors.New("transition_booking: booking was modified concurrently")

	// ErrAccessDenied возвращается, когда актор не имеет права на событие
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrUnknownEvent возвращается при неизвестном событии перехода
	ErrUnknownEvent = errors.New("transition_booking: unknown event")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
