package get_pile_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/ptr"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

func window(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func blocking(id, userID int64, status domain.ReservationStatus, start, end string) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		PileID:    1,
		UserID:    userID,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

// Покрытие окна обязано быть без разрывов: каждый следующий слот
// начинается там, где закончился предыдущий, первый - на границе окна,
// последний - упирается в конец окна.
func assertGapFree(t *testing.T, w domain.TimeRange, slots []domain.Slot) {
	t.Helper()
	require.NotEmpty(t, slots)
	assert.Equal(t, w.Start, slots[0].StartTime)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
	}
	assert.Equal(t, w.End, slots[len(slots)-1].EndTime)
}

func TestBuildSlots_GapFreeCoverage(t *testing.T) {
	w := window("08:00", "20:00")

	slots := buildSlots(w, 30, nil, nil)

	assert.Len(t, slots, 24)
	assertGapFree(t, w, slots)
	for _, slot := range slots {
		assert.True(t, slot.IsFree())
		assert.Nil(t, slot.ReservationID)
	}
}

func TestBuildSlots_WindowNotMultipleOfWidth(t *testing.T) {
	// 08:00-17:50 при ширине 60 минут: последний слот обрезается до 50 минут
	w := window("08:00", "17:50")

	slots := buildSlots(w, 60, nil, nil)

	assert.Len(t, slots, 10)
	assertGapFree(t, w, slots)

	last := slots[len(slots)-1]
	assert.Equal(t, types.TimeString("17:00"), last.StartTime)
	assert.Equal(t, types.TimeString("17:50"), last.EndTime)
}

func TestBuildSlots_FullDayWindow(t *testing.T) {
	w := window("00:00", "24:00")

	slots := buildSlots(w, 60, nil, nil)

	assert.Len(t, slots, 24)
	assertGapFree(t, w, slots)
	assert.Equal(t, types.TimeString("24:00"), slots[23].EndTime)
}

func TestBuildSlots_Occupancy(t *testing.T) {
	w := window("08:00", "12:00")
	reservations := []*domain.Reservation{
		blocking(1, 100, domain.StatusReserved, "08:30", "09:30"),
		blocking(2, 200, domain.StatusActive, "10:00", "11:00"),
	}

	slots := buildSlots(w, 60, reservations, nil)
	require.Len(t, slots, 4)

	// 08:00-09:00 пересекается с reserved бронированием 1
	assert.Equal(t, domain.SlotReserved, slots[0].Occupancy)
	require.NotNil(t, slots[0].ReservationID)
	assert.Equal(t, int64(1), *slots[0].ReservationID)

	// 09:00-10:00 пересекается только с бронированием 1 ([08:30, 09:30))
	assert.Equal(t, domain.SlotReserved, slots[1].Occupancy)

	// 10:00-11:00 занят активной сессией
	assert.Equal(t, domain.SlotActive, slots[2].Occupancy)
	require.NotNil(t, slots[2].ReservationID)
	assert.Equal(t, int64(2), *slots[2].ReservationID)

	// 11:00-12:00 свободен: интервалы полуоткрытые
	assert.Equal(t, domain.SlotFree, slots[3].Occupancy)
	assert.Nil(t, slots[3].ReservationID)
}

func TestBuildSlots_TerminalReservationsDoNotBlock(t *testing.T) {
	w := window("08:00", "10:00")
	reservations := []*domain.Reservation{
		blocking(1, 100, domain.StatusCancelled, "08:00", "09:00"),
		blocking(2, 100, domain.StatusCompleted, "09:00", "10:00"),
	}

	slots := buildSlots(w, 60, reservations, nil)

	for _, slot := range slots {
		assert.True(t, slot.IsFree())
	}
}

func TestBuildSlots_EarliestOverlappingWins(t *testing.T) {
	// Два бронирования пересекаются с одним слотом - аннотация из
	// более раннего по началу
	w := window("09:00", "10:00")
	reservations := []*domain.Reservation{
		blocking(2, 200, domain.StatusReserved, "09:30", "10:00"),
		blocking(1, 100, domain.StatusReserved, "09:00", "09:30"),
	}

	slots := buildSlots(w, 60, reservations, nil)
	require.Len(t, slots, 1)

	require.NotNil(t, slots[0].ReservationID)
	assert.Equal(t, int64(1), *slots[0].ReservationID)
}

func TestBuildSlots_MineFlag(t *testing.T) {
	w := window("08:00", "10:00")
	reservations := []*domain.Reservation{
		blocking(1, 100, domain.StatusReserved, "08:00", "09:00"),
		blocking(2, 200, domain.StatusReserved, "09:00", "10:00"),
	}

	slots := buildSlots(w, 60, reservations, ptr.Ptr(int64(100)))
	require.Len(t, slots, 2)

	assert.True(t, slots[0].Mine)
	assert.False(t, slots[1].Mine)

	// Без viewer все флаги false
	slots = buildSlots(w, 60, reservations, nil)
	assert.False(t, slots[0].Mine)
	assert.False(t, slots[1].Mine)
}

func TestOperatingWindow(t *testing.T) {
	// Без рабочих часов - круглосуточно
	w, err := operatingWindow(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStart, w.Start)
	assert.Equal(t, domain.DayEnd, w.End)

	w, err = operatingWindow(ptr.Ptr("07:00"), ptr.Ptr("23:00"))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("07:00"), w.Start)
	assert.Equal(t, types.TimeString("23:00"), w.End)

	w, err = operatingWindow(ptr.Ptr("06:00"), ptr.Ptr("24:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.DayEnd, w.End)

	_, err = operatingWindow(ptr.Ptr("bad"), nil)
	assert.Error(t, err)
}
