package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrTransitionNotApplied возвращается, когда compare-and-set переход
	// не изменил ни одной строки: запись не существует либо уже не в
	// ожидаемом статусе. Вызывающий код различает эти случаи повторным GetByID.
	ErrTransitionNotApplied = errors.New("reservation.repository: status transition not applied")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
