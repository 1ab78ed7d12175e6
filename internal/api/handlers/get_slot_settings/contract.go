package get_slot_settings

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig/models"
)

type SlotConfigService interface {
	GetLocationSettings(ctx context.Context, locationID int64) (*models.SettingsListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
