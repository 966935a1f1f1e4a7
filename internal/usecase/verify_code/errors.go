package verify_code

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("verify_code: booking not found")

	// ErrCodeInvalid возвращается, когда код не совпал или больше не существует:
	// коды привязаны к статусу confirmed, и любой выход из него аннулирует код
	ErrCodeInvalid = errors.New("verify_code: invalid verification code")

	// ErrCodeExpired возвращается, когда код совпал, но его время жизни истекло.
	// Проверка по часам наслаивается поверх привязки к статусу и не ослабляет
	// гарантию одноразовости
	ErrCodeExpired = errors.New("verify_code: verification code expired")

	// ErrAccessDenied возвращается, когда актор не управляет мерчантом бронирования
	ErrAccessDenied = errors.New("verify_code: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_code: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_code: internal error")
)
