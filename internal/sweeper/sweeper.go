// Package sweeper фоновая отмена no-show бронирований.
//
// Движок бронирований сам никогда не отменяет просроченные записи:
// sweeper - внешний по отношению к движку процесс, который вызывает
// обычный Cancel для reserved-бронирований, чей интервал закончился,
// а сессия так и не была начата.
package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/sessions"
	"github.com/m04kA/SMC-ChargingService/pkg/ptr"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

const noShowReason = "no-show: interval ended before session start"

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetExpiredReserved(ctx context.Context, today time.Time, endBefore types.TimeString) ([]*domain.Reservation, error)
}

// SessionService интерфейс контроллера сессий
type SessionService interface {
	ForceCancel(ctx context.Context, id int64, reason *string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Sweeper периодически отменяет просроченные reserved-бронирования
type Sweeper struct {
	reservationRepo ReservationRepository
	sessionSvc      SessionService
	interval        time.Duration
	grace           time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// New создает sweeper.
// interval - период между проходами, grace - льготное время после конца
// интервала, в течение которого бронирование ещё не считается no-show.
func New(
	reservationRepo ReservationRepository,
	sessionSvc SessionService,
	interval time.Duration,
	grace time.Duration,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		reservationRepo: reservationRepo,
		sessionSvc:      sessionSvc,
		interval:        interval,
		grace:           grace,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// Run запускает цикл sweeper'а до отмены контекста
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper: started, interval=%s, grace=%s", s.interval, s.grace)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper: stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep выполняет один проход: находит reserved-бронирования с
// закончившимся интервалом и отменяет их
func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := s.timeProvider.Now().Add(-s.grace)
	today := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, cutoff.Location())
	endBefore := types.NewTimeString(cutoff)

	expired, err := s.reservationRepo.GetExpiredReserved(ctx, today, endBefore)
	if err != nil {
		s.logger.Error("sweeper: failed to list expired reservations: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	s.logger.Info("sweeper: found %d expired reservations", len(expired))

	for _, rsv := range expired {
		err := s.sessionSvc.ForceCancel(ctx, rsv.ID, ptr.Ptr(noShowReason))
		switch {
		case err == nil:
			s.logger.Info("sweeper: cancelled no-show reservation id=%d", rsv.ID)
		case errors.Is(err, sessions.ErrInvalidTransition), errors.Is(err, sessions.ErrReservationNotFound):
			// Успели start/cancel между выборкой и отменой
			s.logger.Warn("sweeper: reservation id=%d skipped: %v", rsv.ID, err)
		default:
			s.logger.Error("sweeper: failed to cancel reservation id=%d: %v", rsv.ID, err)
		}
	}
}
