package slotconfig

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
)

// SlotSettingsRepository интерфейс репозитория настроек слотов
type SlotSettingsRepository interface {
	GetAllByLocation(ctx context.Context, locationID int64) ([]*domain.PileSlotSettings, error)
	Upsert(ctx context.Context, settings *domain.PileSlotSettings) (*domain.PileSlotSettings, error)
}

// StationServiceClient интерфейс клиента для StationService
type StationServiceClient interface {
	GetLocation(ctx context.Context, locationID int64) (*stationservice.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
