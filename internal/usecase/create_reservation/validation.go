package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PileID <= 0 {
		return fmt.Errorf("%w: pileID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

// validateInterval проверяет интервал бронирования:
// корректность границ, допустимую длительность и попадание
// в рабочие часы столба
func validateInterval(interval domain.TimeRange, window domain.TimeRange) error {
	if err := interval.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	duration, err := interval.DurationMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if duration < domain.MinReservationMinutes {
		return fmt.Errorf("%w: duration %d minutes is below minimum %d",
			ErrInvalidInterval, duration, domain.MinReservationMinutes)
	}
	if duration > domain.MaxReservationMinutes {
		return fmt.Errorf("%w: duration %d minutes exceeds maximum %d",
			ErrInvalidInterval, duration, domain.MaxReservationMinutes)
	}

	if !interval.Within(window) {
		return fmt.Errorf("%w: interval [%s, %s) is outside operating hours [%s, %s)",
			ErrInvalidInterval, interval.Start, interval.End, window.Start, window.End)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(reservationDate time.Time, now time.Time) error {
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// operatingWindow возвращает рабочие часы столба из справочника.
// Если справочник их не задал, столб доступен круглосуточно.
func operatingWindow(pile *stationservice.Pile) (domain.TimeRange, error) {
	window := domain.TimeRange{Start: domain.DayStart, End: domain.DayEnd}

	if pile.OpenTime != nil {
		open, err := types.NewTimeStringFromString(*pile.OpenTime)
		if err != nil {
			return domain.TimeRange{}, fmt.Errorf("%w: pile open time: %v", ErrInternal, err)
		}
		window.Start = open
	}

	if pile.CloseTime != nil {
		if *pile.CloseTime == "24:00" {
			window.End = domain.DayEnd
		} else {
			closeTime, err := types.NewTimeStringFromString(*pile.CloseTime)
			if err != nil {
				return domain.TimeRange{}, fmt.Errorf("%w: pile close time: %v", ErrInternal, err)
			}
			window.End = closeTime
		}
	}

	return window, nil
}

// findConflict ищет первое reserved/active бронирование, интервал которого
// пересекается с запрошенным. Пересечение полуоткрытых интервалов:
// [a,b) и [c,d) конфликтуют тогда и только тогда, когда a < d && c < b.
// Граничащие интервалы (b == c) конфликтом не считаются.
func findConflict(interval domain.TimeRange, reservations []*domain.Reservation) *domain.Reservation {
	for _, rsv := range reservations {
		if !rsv.IsBlocking() {
			continue
		}
		if interval.Overlaps(rsv.Interval()) {
			return rsv
		}
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
