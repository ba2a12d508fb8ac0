package whatsapp

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrUnavailable возвращается, когда CallMeBot недоступен
	ErrUnavailable = errors.New("whatsapp client: service unavailable")

	// ErrUnauthorized возвращается при неверном API ключе
	ErrUnauthorized = errors.New("whatsapp client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")
)
