package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

func interval(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestTimeRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       TimeRange
		wantErr bool
	}{
		{"valid", interval("09:00", "10:00"), false},
		{"valid full day", interval("00:00", "24:00"), false},
		{"valid ending at midnight", interval("23:30", "24:00"), false},
		{"start equals end", interval("10:00", "10:00"), true},
		{"start after end", interval("11:00", "10:00"), true},
		{"missing start", TimeRange{End: types.TimeString("10:00")}, true},
		{"missing end", TimeRange{Start: types.TimeString("09:00")}, true},
		{"24:00 as start", interval("24:00", "24:00"), true},
		{"malformed start", interval("9:00", "10:00"), true},
		{"out of range hour", interval("25:00", "26:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"identical", interval("09:00", "10:00"), interval("09:00", "10:00"), true},
		{"partial overlap", interval("09:00", "10:00"), interval("09:30", "10:30"), true},
		{"contained", interval("09:00", "12:00"), interval("10:00", "11:00"), true},
		{"back to back", interval("09:00", "10:00"), interval("10:00", "11:00"), false},
		{"disjoint", interval("09:00", "10:00"), interval("11:00", "12:00"), false},
		{"touching at start", interval("10:00", "11:00"), interval("09:00", "10:00"), false},
		{"overlap at day end", interval("23:00", "24:00"), interval("23:30", "24:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRange_Within(t *testing.T) {
	window := interval("08:00", "22:00")

	assert.True(t, interval("08:00", "22:00").Within(window))
	assert.True(t, interval("09:00", "10:00").Within(window))
	assert.False(t, interval("07:00", "09:00").Within(window))
	assert.False(t, interval("21:00", "23:00").Within(window))
	assert.True(t, interval("09:00", "10:00").Within(interval("00:00", "24:00")))
}

func TestTimeRange_DurationMinutes(t *testing.T) {
	d, err := interval("09:00", "10:30").DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = interval("00:00", "24:00").DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, d)

	d, err = interval("23:45", "24:00").DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 15, d)
}
