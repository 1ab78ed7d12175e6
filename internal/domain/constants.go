package domain

import "github.com/m04kA/SMC-ChargingService/pkg/types"

// Default configuration values
const (
	DefaultSlotWidthMinutes = 30
)

// Business validation constants
const (
	MinSlotWidthMinutes = 5
	MaxSlotWidthMinutes = 240 // 4 hours

	MinReservationMinutes = 15
	MaxReservationMinutes = 480 // 8 hours

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayStart / DayEnd границы суток, используются как окно работы столба,
// если справочник не задал рабочие часы
var (
	DayStart = types.TimeString("00:00")
	DayEnd   = types.TimeString("24:00")
)

// BlockingStatuses статусы, занимающие интервал на столбе
// Используются при проверке пересечений и построении календаря слотов
var BlockingStatuses = []ReservationStatus{
	StatusReserved,
	StatusActive,
}

// TerminalStatuses конечные статусы, из которых нет переходов
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
}
