package get_pile_reservations

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetPileReservations(ctx context.Context, req *models.GetPileReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
