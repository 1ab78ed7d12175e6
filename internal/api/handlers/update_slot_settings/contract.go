package update_slot_settings

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig/models"
)

type SlotConfigService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
