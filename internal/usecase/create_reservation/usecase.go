package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	fleetClient "github.com/m04kA/SMC-ChargingService/internal/integrations/fleetservice"
	stationClient "github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
)

// UseCase use case для создания бронирования зарядного столба
type UseCase struct {
	reservationRepo ReservationRepository
	stationClient   StationServiceClient
	fleetClient     FleetServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	stationClient StationServiceClient,
	fleetClient FleetServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		stationClient:   stationClient,
		fleetClient:     fleetClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности интервала и вставка выполняются в одной
// serializable-транзакции с блокировкой строк столба (FOR UPDATE),
// поэтому из двух конкурирующих запросов на пересекающиеся интервалы
// одного столба выигрывает ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, pile=%d, vehicle=%d, date=%s, interval=[%s, %s)",
		req.UserID, req.PileID, req.VehicleID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем столб из справочника
	pile, err := uc.stationClient.GetPile(ctx, req.PileID)
	if err != nil {
		if errors.Is(err, stationClient.ErrPileNotFound) {
			uc.logger.Warn("CreateReservation: pile id=%d not found", req.PileID)
			return nil, ErrPileNotFound
		}
		uc.logger.Error("CreateReservation: failed to get pile id=%d: %v", req.PileID, err)
		return nil, fmt.Errorf("%w: failed to get pile: %v", ErrInternal, err)
	}

	// 4. Столб должен быть в эксплуатации
	if !pile.InService {
		uc.logger.Warn("CreateReservation: pile id=%d is out of service", req.PileID)
		return nil, ErrPileUnavailable
	}

	// 5. Проверяем существование автомобиля у пользователя
	if _, err := uc.fleetClient.GetVehicle(ctx, req.UserID, req.VehicleID); err != nil {
		if errors.Is(err, fleetClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateReservation: vehicle id=%d not found for user id=%d", req.VehicleID, req.UserID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateReservation: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 6. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 7. Валидация интервала относительно рабочих часов столба
	window, err := operatingWindow(pile)
	if err != nil {
		uc.logger.Error("CreateReservation: bad operating hours for pile id=%d: %v", req.PileID, err)
		return nil, err
	}

	interval := domain.TimeRange{Start: req.StartTime, End: req.EndTime}
	if err := validateInterval(interval, window); err != nil {
		uc.logger.Warn("CreateReservation: interval validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 8. Проверка доступности и вставка в одной serializable-транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Берём все reserved/active бронирования столба на дату
		// с блокировкой (FOR UPDATE) - точка сериализации по столбу
		filter := domain.PileReservationsFilter{
			PileID:       req.PileID,
			Date:         &req.Date,
			OnlyBlocking: true,
		}

		reservations, err := uc.reservationRepo.GetByPileWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечение интервалов
		if conflict := findConflict(interval, reservations); conflict != nil {
			uc.logger.Warn("CreateReservation: interval [%s, %s) blocked by reservation id=%d",
				req.StartTime, req.EndTime, conflict.ID)
			return &ConflictError{ReservationID: conflict.ID}
		}

		// 8.3. Создаем бронирование с денормализацией данных столба
		rsv := &domain.Reservation{
			PileID:          req.PileID,
			LocationID:      pile.LocationID,
			UserID:          req.UserID,
			VehicleID:       req.VehicleID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          domain.StatusReserved,
			// Денормализация данных столба
			PileName:  pile.Name,
			Connector: &pile.Connector,
		}

		created, err := uc.reservationRepo.Create(txCtx, rsv)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		PileID:     result.PileID,
		LocationID: result.LocationID,
		UserID:     result.UserID,
		VehicleID:  result.VehicleID,
		Date:       result.ReservationDate,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		PileName:   result.PileName,
		Connector:  result.Connector,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
