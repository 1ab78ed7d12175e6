package get_slot_settings

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig/models"
)

// SlotSettingsListResponse HTTP response model
type SlotSettingsListResponse struct {
	LocationID              int64                  `json:"locationId"`
	DefaultSlotWidthMinutes int                    `json:"defaultSlotWidthMinutes"`
	Settings                []SlotSettingsResponse `json:"settings"`
}

// SlotSettingsResponse настройка ширины слотов
type SlotSettingsResponse struct {
	ID               int64  `json:"id"`
	LocationID       int64  `json:"locationId"`
	PileID           *int64 `json:"pileId,omitempty"` // nil = для всей площадки
	SlotWidthMinutes int    `json:"slotWidthMinutes"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsListResponse) *SlotSettingsListResponse {
	settings := make([]SlotSettingsResponse, len(resp.Settings))
	for i, s := range resp.Settings {
		settings[i] = FromServiceSettings(s)
	}

	return &SlotSettingsListResponse{
		LocationID:              resp.LocationID,
		DefaultSlotWidthMinutes: resp.DefaultSlotWidthMinutes,
		Settings:                settings,
	}
}

// FromServiceSettings конвертирует одну настройку
func FromServiceSettings(s *models.SettingsResponse) SlotSettingsResponse {
	return SlotSettingsResponse{
		ID:               s.ID,
		LocationID:       s.LocationID,
		PileID:           s.PileID,
		SlotWidthMinutes: s.SlotWidthMinutes,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
	}
}
