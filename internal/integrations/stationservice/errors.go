package stationservice

import "errors"

var (
	// ErrPileNotFound возвращается, когда столб не найден в справочнике
	ErrPileNotFound = errors.New("charging pile not found")

	// ErrLocationNotFound возвращается, когда площадка не найдена
	ErrLocationNotFound = errors.New("charging location not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("stationservice client: invalid response")
)
