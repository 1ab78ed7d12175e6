package models

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// UpdateSettingsRequest запрос на создание/обновление настроек слотов
type UpdateSettingsRequest struct {
	LocationID       int64
	PileID           *int64 // nil = настройка для всех столбов площадки
	SlotWidthMinutes int
}

// SettingsResponse настройки ширины слотов в ответе сервиса
type SettingsResponse struct {
	ID               int64
	LocationID       int64
	PileID           *int64
	SlotWidthMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SettingsListResponse все настройки площадки
type SettingsListResponse struct {
	LocationID              int64
	DefaultSlotWidthMinutes int // Применяется при отсутствии настроек
	Settings                []*SettingsResponse
}

// FromDomainSettings конвертирует domain модель в response
func FromDomainSettings(s *domain.PileSlotSettings) *SettingsResponse {
	return &SettingsResponse{
		ID:               s.ID,
		LocationID:       s.LocationID,
		PileID:           s.PileID,
		SlotWidthMinutes: s.SlotWidthMinutes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// FromDomainSettingsList конвертирует список domain моделей в response
func FromDomainSettingsList(locationID int64, settings []*domain.PileSlotSettings) *SettingsListResponse {
	result := make([]*SettingsResponse, len(settings))
	for i, s := range settings {
		result[i] = FromDomainSettings(s)
	}
	return &SettingsListResponse{
		LocationID:              locationID,
		DefaultSlotWidthMinutes: domain.DefaultSlotWidthMinutes,
		Settings:                result,
	}
}
