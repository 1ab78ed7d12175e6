package get_pile_slots

import "errors"

var (
	// ErrPileNotFound возвращается, когда столб не найден в справочнике
	ErrPileNotFound = errors.New("get_pile_slots: charging pile not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_pile_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_pile_slots: internal error")
)
