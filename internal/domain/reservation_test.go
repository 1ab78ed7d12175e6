package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	all := []ReservationStatus{StatusReserved, StatusActive, StatusCompleted, StatusCancelled}

	allowed := map[ReservationStatus]map[ReservationStatus]bool{
		StatusReserved:  {StatusActive: true, StatusCancelled: true},
		StatusActive:    {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	// Полная матрица переходов: всё, чего нет в allowed, запрещено
	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equalf(t, allowed[from][to], got, "transition %s -> %s", from, to)
		}
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusReserved.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestReservationStatus_IsBlocking(t *testing.T) {
	assert.True(t, StatusReserved.IsBlocking())
	assert.True(t, StatusActive.IsBlocking())
	assert.False(t, StatusCompleted.IsBlocking())
	assert.False(t, StatusCancelled.IsBlocking())
}

func TestParseReservationStatus(t *testing.T) {
	for _, s := range []string{"reserved", "active", "completed", "cancelled"} {
		status, err := ParseReservationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, ReservationStatus(s), status)
	}

	_, err := ParseReservationStatus("pending")
	assert.Error(t, err)

	_, err = ParseReservationStatus("")
	assert.Error(t, err)
}

func TestReservation_LifecycleHelpers(t *testing.T) {
	tests := []struct {
		status       ReservationStatus
		canStart     bool
		canStop      bool
		canCancel    bool
		blocksOthers bool
	}{
		{StatusReserved, true, false, true, true},
		{StatusActive, false, true, true, true},
		{StatusCompleted, false, false, false, false},
		{StatusCancelled, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			rsv := &Reservation{Status: tt.status}
			assert.Equal(t, tt.canStart, rsv.CanBeStarted())
			assert.Equal(t, tt.canStop, rsv.CanBeStopped())
			assert.Equal(t, tt.canCancel, rsv.CanBeCancelled())
			assert.Equal(t, tt.blocksOthers, rsv.IsBlocking())
		})
	}
}
