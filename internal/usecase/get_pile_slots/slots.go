package get_pile_slots

import (
	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// buildSlots строит детерминированное покрытие рабочего окна слотами
// фиксированной ширины. Последний слот обрезается по границе окна,
// поэтому покрытие всегда без разрывов и без выхода за окно, даже если
// длина окна не кратна ширине слота.
//
// Слот помечается занятым, если с ним пересекается хотя бы одно
// reserved/active бронирование; аннотация берётся из самого раннего
// пересекающегося. Функция чистая: не меняет входные данные и безопасна
// для конкурентных вызовов.
func buildSlots(
	window domain.TimeRange,
	slotWidthMinutes int,
	reservations []*domain.Reservation,
	viewerUserID *int64,
) []domain.Slot {
	slots := make([]domain.Slot, 0)

	cursor := window.Start
	for cursor.IsBefore(window.End) {
		end, err := cursor.AddMinutes(slotWidthMinutes)
		if err != nil || window.End.IsBefore(end) {
			// Хвост окна короче ширины слота - обрезаем по границе
			end = window.End
		}

		slot := domain.Slot{
			StartTime: cursor,
			EndTime:   end,
			Occupancy: domain.SlotFree,
		}

		if occupant := earliestOverlapping(slot.Interval(), reservations); occupant != nil {
			slot.ReservationID = &occupant.ID
			slot.Mine = viewerUserID != nil && occupant.UserID == *viewerUserID
			if occupant.Status == domain.StatusActive {
				slot.Occupancy = domain.SlotActive
			} else {
				slot.Occupancy = domain.SlotReserved
			}
		}

		slots = append(slots, slot)
		cursor = end
	}

	return slots
}

// earliestOverlapping возвращает самое раннее по началу reserved/active
// бронирование, пересекающееся с интервалом слота.
// Интервалы полуоткрытые: граничащие не пересекаются.
func earliestOverlapping(interval domain.TimeRange, reservations []*domain.Reservation) *domain.Reservation {
	var found *domain.Reservation
	for _, rsv := range reservations {
		if !rsv.IsBlocking() {
			continue
		}
		if !interval.Overlaps(rsv.Interval()) {
			continue
		}
		if found == nil || rsv.StartTime.IsBefore(found.StartTime) {
			found = rsv
		}
	}
	return found
}

// operatingWindow возвращает рабочие часы столба, по умолчанию круглосуточно
func operatingWindow(openTime, closeTime *string) (domain.TimeRange, error) {
	window := domain.TimeRange{Start: domain.DayStart, End: domain.DayEnd}

	if openTime != nil {
		open, err := types.NewTimeStringFromString(*openTime)
		if err != nil {
			return domain.TimeRange{}, err
		}
		window.Start = open
	}

	if closeTime != nil {
		if *closeTime == "24:00" {
			window.End = domain.DayEnd
		} else {
			end, err := types.NewTimeStringFromString(*closeTime)
			if err != nil {
				return domain.TimeRange{}, err
			}
			window.End = end
		}
	}

	return window, nil
}
