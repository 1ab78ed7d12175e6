package update_slot_settings

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig/models"
)

// UpdateSlotSettingsRequest HTTP request model
type UpdateSlotSettingsRequest struct {
	PileID           *int64 `json:"pileId,omitempty"` // nil = настройка для всей площадки
	SlotWidthMinutes int    `json:"slotWidthMinutes"`
}

// SlotSettingsResponse HTTP response model
type SlotSettingsResponse struct {
	ID               int64  `json:"id"`
	LocationID       int64  `json:"locationId"`
	PileID           *int64 `json:"pileId,omitempty"`
	SlotWidthMinutes int    `json:"slotWidthMinutes"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSlotSettingsRequest) ToServiceRequest(locationID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		LocationID:       locationID,
		PileID:           r.PileID,
		SlotWidthMinutes: r.SlotWidthMinutes,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsResponse) *SlotSettingsResponse {
	return &SlotSettingsResponse{
		ID:               resp.ID,
		LocationID:       resp.LocationID,
		PileID:           resp.PileID,
		SlotWidthMinutes: resp.SlotWidthMinutes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
