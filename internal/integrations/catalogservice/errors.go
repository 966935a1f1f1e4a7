package catalogservice

import "errors"

var (
	// ErrMerchantNotFound возвращается, когда мерчант не найден в каталоге
	ErrMerchantNotFound = errors.New("catalogservice: merchant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice: internal error")
)
