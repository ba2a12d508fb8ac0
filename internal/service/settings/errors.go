package settings

import "errors"

var (
	// ErrNotLoaded возвращается, если Get вызван до Load
	ErrNotLoaded = errors.New("settings: not loaded")

	// ErrInvalidSettings возвращается, если настройки не образуют корректный календарь
	ErrInvalidSettings = errors.New("settings: invalid business settings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
