package get_pile_slots

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByPileWithFilter(ctx context.Context, filter domain.PileReservationsFilter) ([]*domain.Reservation, error)
}

// SlotSettingsRepository интерфейс репозитория настроек ширины слотов
type SlotSettingsRepository interface {
	GetWithHierarchy(ctx context.Context, locationID int64, pileID *int64) (*domain.PileSlotSettings, error)
}

// StationServiceClient интерфейс клиента для StationService
type StationServiceClient interface {
	GetPile(ctx context.Context, pileID int64) (*stationservice.Pile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
