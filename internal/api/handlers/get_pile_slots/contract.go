package get_pile_slots

import (
	"context"

	getPileSlots "github.com/m04kA/SMC-ChargingService/internal/usecase/get_pile_slots"
)

type GetPileSlotsUseCase interface {
	Execute(ctx context.Context, req *getPileSlots.Request) (*getPileSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
