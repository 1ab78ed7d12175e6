package domain

import "github.com/m04kA/SMC-ChargingService/pkg/types"

// SlotOccupancy статус занятости слота
type SlotOccupancy string

const (
	SlotFree     SlotOccupancy = "free"
	SlotReserved SlotOccupancy = "reserved"
	SlotActive   SlotOccupancy = "active"
)

// Slot derived view of a pile's occupancy for one bucket of the operating
// window. Slots are computed on read from the reservation set and are
// never stored.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Occupancy SlotOccupancy

	// ReservationID ID занимающего бронирования (nil для свободного слота)
	ReservationID *int64

	// Mine true, если занимающее бронирование принадлежит запросившему
	// пользователю (viewerUserId)
	Mine bool
}

// IsFree returns true if no blocking reservation intersects the slot
func (s *Slot) IsFree() bool {
	return s.Occupancy == SlotFree
}

// Interval возвращает интервал слота
func (s *Slot) Interval() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}
