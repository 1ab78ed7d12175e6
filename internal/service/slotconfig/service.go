package slotconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	stationClient "github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
	"github.com/m04kA/SMC-ChargingService/internal/service/slotconfig/models"
)

// Service сервис настроек ширины слотов календаря
type Service struct {
	settingsRepo  SlotSettingsRepository
	stationClient StationServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек слотов
func NewService(settingsRepo SlotSettingsRepository, stationClient StationServiceClient, logger Logger) *Service {
	return &Service{
		settingsRepo:  settingsRepo,
		stationClient: stationClient,
		logger:        logger,
	}
}

// GetLocationSettings получает все настройки площадки
func (s *Service) GetLocationSettings(ctx context.Context, locationID int64) (*models.SettingsListResponse, error) {
	s.logger.Info("GetLocationSettings: fetching settings for location=%d", locationID)

	if err := s.checkLocationExists(ctx, locationID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetAllByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("GetLocationSettings: repository error for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: GetLocationSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLocationSettings: fetched %d settings for location=%d", len(settings), locationID)
	return models.FromDomainSettingsList(locationID, settings), nil
}

// UpdateSettings создает или обновляет настройку ширины слота
// для площадки или отдельного столба
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: location=%d, pile=%v, slotWidth=%d",
		req.LocationID, req.PileID, req.SlotWidthMinutes)

	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if req.PileID != nil && *req.PileID <= 0 {
		return nil, fmt.Errorf("%w: pileID must be positive", ErrInvalidInput)
	}
	if req.SlotWidthMinutes < domain.MinSlotWidthMinutes || req.SlotWidthMinutes > domain.MaxSlotWidthMinutes {
		s.logger.Warn("UpdateSettings: slot width %d out of bounds", req.SlotWidthMinutes)
		return nil, fmt.Errorf("%w: slot width must be between %d and %d minutes",
			ErrInvalidSlotWidth, domain.MinSlotWidthMinutes, domain.MaxSlotWidthMinutes)
	}

	if err := s.checkLocationExists(ctx, req.LocationID); err != nil {
		return nil, err
	}

	settings := &domain.PileSlotSettings{
		LocationID:       req.LocationID,
		PileID:           req.PileID,
		SlotWidthMinutes: req.SlotWidthMinutes,
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: saved settings id=%d for location=%d", updated.ID, req.LocationID)
	return models.FromDomainSettings(updated), nil
}

func (s *Service) checkLocationExists(ctx context.Context, locationID int64) error {
	if _, err := s.stationClient.GetLocation(ctx, locationID); err != nil {
		if errors.Is(err, stationClient.ErrLocationNotFound) {
			s.logger.Warn("checkLocationExists: location id=%d not found", locationID)
			return ErrLocationNotFound
		}
		s.logger.Error("checkLocationExists: failed to get location id=%d: %v", locationID, err)
		return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	return nil
}
