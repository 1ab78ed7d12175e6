package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

// Service read-фасад над журналом бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь может видеть только своё бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if rsv.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(rsv), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPileReservations получает журнал бронирований столба, опционально
// за конкретную дату и включая завершённые/отменённые записи.
// Используется операторским интерфейсом как журнал зарядных сессий.
func (s *Service) GetPileReservations(ctx context.Context, req *models.GetPileReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPileReservations: fetching reservations for pile=%d", req.PileID)

	if req.PileID <= 0 {
		return nil, fmt.Errorf("%w: pileID must be positive", ErrInvalidInput)
	}

	filter := domain.PileReservationsFilter{
		PileID:          req.PileID,
		Date:            req.Date,
		IncludeTerminal: req.IncludeTerminal,
	}

	reservations, err := s.reservationRepo.GetByPileWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPileReservations: repository error for pile=%d: %v", req.PileID, err)
		return nil, fmt.Errorf("%w: GetPileReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPileReservations: successfully fetched %d reservations for pile=%d", len(reservations), req.PileID)
	return models.FromDomainReservationList(reservations), nil
}
