package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/infra/queue"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
)

// Service контроллер жизненного цикла зарядной сессии.
//
// Переходы выполняются compare-and-set запросами репозитория: условие на
// исходный статус в WHERE гарантирует, что из двух конкурирующих переходов
// по одному бронированию применится ровно один, второй получит
// ErrInvalidTransition.
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр контроллера сессий.
// publisher может быть nil, если публикация событий выключена.
func NewService(reservationRepo ReservationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// Start начинает зарядную сессию: reserved -> active, ставит activated_at.
// Легален только из reserved.
func (s *Service) Start(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Start: starting session for reservation id=%d by user=%d", id, userID)

	rsv, err := s.getOwned(ctx, "Start", id, userID)
	if err != nil {
		return err
	}

	if !rsv.CanBeStarted() {
		s.logger.Warn("Start: reservation id=%d cannot be started, status=%s", id, rsv.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.Activate(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrTransitionNotApplied) {
			// Конкурирующий переход успел раньше
			s.logger.Warn("Start: reservation id=%d lost transition race", id)
			return ErrInvalidTransition
		}
		s.logger.Error("Start: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Start - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Start: session started for reservation id=%d", id)
	return nil
}

// Stop завершает зарядную сессию: active -> completed, ставит completed_at.
// Легален только из active. После перехода интервал столба освобождается
// для новых бронирований, запись остаётся в журнале как история.
func (s *Service) Stop(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Stop: stopping session for reservation id=%d by user=%d", id, userID)

	rsv, err := s.getOwned(ctx, "Stop", id, userID)
	if err != nil {
		return err
	}

	if !rsv.CanBeStopped() {
		s.logger.Warn("Stop: reservation id=%d cannot be stopped, status=%s", id, rsv.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.Complete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrTransitionNotApplied) {
			s.logger.Warn("Stop: reservation id=%d lost transition race", id)
			return ErrInvalidTransition
		}
		s.logger.Error("Stop: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Stop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Stop: session completed for reservation id=%d", id)
	s.publishCompleted(ctx, id)

	return nil
}

// Cancel отменяет бронирование пользователем: reserved|active -> cancelled.
// Пользователь может отменить только своё бронирование.
func (s *Service) Cancel(ctx context.Context, id int64, userID int64, reason *string) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, userID)

	if err := validateReason(reason); err != nil {
		s.logger.Warn("Cancel: invalid reason for reservation id=%d: %v", id, err)
		return err
	}

	rsv, err := s.getOwned(ctx, "Cancel", id, userID)
	if err != nil {
		return err
	}

	if !rsv.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, rsv.Status)
		return ErrInvalidTransition
	}

	return s.cancel(ctx, id, reason)
}

// ForceCancel отменяет бронирование без проверки владельца.
// Используется оператором и sweeper'ом no-show бронирований.
func (s *Service) ForceCancel(ctx context.Context, id int64, reason *string) error {
	s.logger.Info("ForceCancel: cancelling reservation id=%d", id)

	if err := validateReason(reason); err != nil {
		s.logger.Warn("ForceCancel: invalid reason for reservation id=%d: %v", id, err)
		return err
	}

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("ForceCancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("ForceCancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: ForceCancel - repository error: %v", ErrInternal, err)
	}

	if !rsv.CanBeCancelled() {
		s.logger.Warn("ForceCancel: reservation id=%d cannot be cancelled, status=%s", id, rsv.Status)
		return ErrInvalidTransition
	}

	return s.cancel(ctx, id, reason)
}

func (s *Service) cancel(ctx context.Context, id int64, reason *string) error {
	if err := s.reservationRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, reservationRepo.ErrTransitionNotApplied) {
			s.logger.Warn("Cancel: reservation id=%d lost transition race", id)
			return ErrInvalidTransition
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}

// getOwned получает бронирование и проверяет владельца
func (s *Service) getOwned(ctx context.Context, op string, id int64, userID int64) (*domain.Reservation, error) {
	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if rsv.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to reservation id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return rsv, nil
}

// publishCompleted публикует событие завершённой сессии.
// Ошибки публикации логируются и не влияют на результат операции.
func (s *Service) publishCompleted(ctx context.Context, id int64) {
	if s.publisher == nil {
		return
	}

	rsv, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Stop: failed to load reservation id=%d for event: %v", id, err)
		return
	}

	event := queue.SessionCompletedEvent{
		ReservationID: rsv.ID,
		PileID:        rsv.PileID,
		LocationID:    rsv.LocationID,
		UserID:        rsv.UserID,
		VehicleID:     rsv.VehicleID,
		PileName:      rsv.PileName,
		Date:          rsv.ReservationDate.Format(domain.DateFormat),
		StartTime:     rsv.StartTime.String(),
		EndTime:       rsv.EndTime.String(),
		CompletedAt:   formatTimePtr(rsv.CompletedAt),
	}
	if rsv.ActivatedAt != nil {
		event.ActivatedAt = rsv.ActivatedAt.UTC().Format(time.RFC3339)
	}

	// Ошибка уже залогирована издателем
	_ = s.publisher.PublishSessionCompleted(ctx, event)
}

func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
