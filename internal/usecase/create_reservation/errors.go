package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrPileNotFound возвращается, когда столб не найден в справочнике
	ErrPileNotFound = errors.New("create_reservation: charging pile not found")

	// ErrPileUnavailable возвращается, когда столб выведен из эксплуатации
	ErrPileUnavailable = errors.New("create_reservation: charging pile is out of service")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	// или не принадлежит пользователю
	ErrVehicleNotFound = errors.New("create_reservation: vehicle not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidInterval возвращается при некорректном интервале:
	// нарушен формат, start >= end, длительность вне допустимой
	// или интервал выходит за рабочие часы столба
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrIntervalConflict возвращается, когда интервал пересекается с
	// существующим reserved/active бронированием. Конкретное бронирование
	// доступно через ConflictError (errors.As).
	ErrIntervalConflict = errors.New("create_reservation: interval conflicts with an existing reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// ConflictError ошибка пересечения интервалов с ID мешающего бронирования.
// Разворачивается в ErrIntervalConflict, поэтому проверки через errors.Is
// продолжают работать.
type ConflictError struct {
	ReservationID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: blocked by reservation id=%d", ErrIntervalConflict, e.ReservationID)
}

func (e *ConflictError) Unwrap() error {
	return ErrIntervalConflict
}
