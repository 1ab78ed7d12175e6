package get_pile_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/slotsettings"
	stationClient "github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
	"github.com/m04kA/SMC-ChargingService/pkg/ptr"
)

// UseCase use case для получения календаря слотов столба на дату
type UseCase struct {
	reservationRepo  ReservationRepository
	slotSettingsRepo SlotSettingsRepository
	stationClient    StationServiceClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotSettingsRepo SlotSettingsRepository,
	stationClient StationServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		slotSettingsRepo: slotSettingsRepo,
		stationClient:    stationClient,
		logger:           logger,
	}
}

// Execute строит календарь слотов: покрытие рабочего окна столба без
// разрывов, с занятостью по reserved/active бронированиям и флагом Mine
// для бронирований запросившего пользователя. Только чтение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPileSlots: pile=%d, date=%s", req.PileID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.PileID <= 0 {
		return nil, fmt.Errorf("%w: pileID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем столб из справочника
	pile, err := uc.stationClient.GetPile(ctx, req.PileID)
	if err != nil {
		if errors.Is(err, stationClient.ErrPileNotFound) {
			uc.logger.Warn("GetPileSlots: pile id=%d not found", req.PileID)
			return nil, ErrPileNotFound
		}
		uc.logger.Error("GetPileSlots: failed to get pile id=%d: %v", req.PileID, err)
		return nil, fmt.Errorf("%w: failed to get pile: %v", ErrInternal, err)
	}

	// 3. Ширина слота: настройка столба -> настройка площадки -> дефолт
	slotWidth := domain.DefaultSlotWidthMinutes
	settings, err := uc.slotSettingsRepo.GetWithHierarchy(ctx, pile.LocationID, ptr.Ptr(req.PileID))
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetPileSlots: failed to get slot settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot settings: %v", ErrInternal, err)
	}
	if settings != nil {
		slotWidth = settings.SlotWidthMinutes
	}

	// 4. Рабочее окно столба
	window, err := operatingWindow(pile.OpenTime, pile.CloseTime)
	if err != nil {
		uc.logger.Error("GetPileSlots: bad operating hours for pile id=%d: %v", req.PileID, err)
		return nil, fmt.Errorf("%w: bad operating hours: %v", ErrInternal, err)
	}

	// 5. Занимающие интервал бронирования на дату
	filter := domain.PileReservationsFilter{
		PileID:       req.PileID,
		Date:         &req.Date,
		OnlyBlocking: true,
	}

	reservations, err := uc.reservationRepo.GetByPileWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetPileSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Строим покрытие окна слотами
	slots := buildSlots(window, slotWidth, reservations, req.ViewerUserID)

	uc.logger.Info("GetPileSlots: built %d slots for pile=%d", len(slots), req.PileID)

	return &Response{
		PileID:           req.PileID,
		Date:             req.Date,
		SlotWidthMinutes: slotWidth,
		Slots:            slots,
	}, nil
}
