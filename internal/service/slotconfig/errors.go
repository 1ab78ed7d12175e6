package slotconfig

import "errors"

var (
	// ErrLocationNotFound возвращается, когда площадка не найдена
	ErrLocationNotFound = errors.New("charging location not found")

	// ErrInvalidSlotWidth возвращается при ширине слота вне допустимых границ
	ErrInvalidSlotWidth = errors.New("invalid slot width")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
