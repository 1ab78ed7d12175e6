package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/sessions"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

type fakeReservationRepo struct {
	expired       []*domain.Reservation
	lastToday     time.Time
	lastEndBefore types.TimeString
}

func (r *fakeReservationRepo) GetExpiredReserved(_ context.Context, today time.Time, endBefore types.TimeString) ([]*domain.Reservation, error) {
	r.lastToday = today
	r.lastEndBefore = endBefore
	return r.expired, nil
}

type fakeSessionSvc struct {
	cancelled []int64
	reasons   []*string
	errs      map[int64]error
}

func (s *fakeSessionSvc) ForceCancel(_ context.Context, id int64, reason *string) error {
	if err, ok := s.errs[id]; ok {
		return err
	}
	s.cancelled = append(s.cancelled, id)
	s.reasons = append(s.reasons, reason)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweeper_Sweep_CancelsExpired(t *testing.T) {
	repo := &fakeReservationRepo{
		expired: []*domain.Reservation{
			{ID: 1, Status: domain.StatusReserved},
			{ID: 2, Status: domain.StatusReserved},
		},
	}
	svc := &fakeSessionSvc{}

	s := New(repo, svc, time.Minute, 10*time.Minute, nopLogger{})
	s.timeProvider = &fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	s.Sweep(context.Background())

	assert.Equal(t, []int64{1, 2}, svc.cancelled)
	for _, reason := range svc.reasons {
		require.NotNil(t, reason)
		assert.Equal(t, noShowReason, *reason)
	}

	// Отсечка учитывает льготное время: 12:00 - 10 минут
	assert.Equal(t, types.TimeString("11:50"), repo.lastEndBefore)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.lastToday)
}

func TestSweeper_Sweep_SkipsRacedReservations(t *testing.T) {
	repo := &fakeReservationRepo{
		expired: []*domain.Reservation{
			{ID: 1, Status: domain.StatusReserved},
			{ID: 2, Status: domain.StatusReserved},
			{ID: 3, Status: domain.StatusReserved},
		},
	}
	// Бронирование 1 успели начать, 2 - удалить, между выборкой и отменой
	svc := &fakeSessionSvc{errs: map[int64]error{
		1: sessions.ErrInvalidTransition,
		2: sessions.ErrReservationNotFound,
	}}

	s := New(repo, svc, time.Minute, 0, nopLogger{})
	s.timeProvider = &fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	s.Sweep(context.Background())

	assert.Equal(t, []int64{3}, svc.cancelled)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }
