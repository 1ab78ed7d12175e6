package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ChargingService/pkg/ptr"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

type fakeRepo struct {
	byID       map[int64]*domain.Reservation
	byUser     []*domain.Reservation
	byPile     []*domain.Reservation
	lastFilter domain.PileReservationsFilter
	lastStatus *domain.ReservationStatus
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	rsv, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return rsv, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, _ int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	r.lastStatus = status
	return r.byUser, nil
}

func (r *fakeRepo) GetByPileWithFilter(_ context.Context, filter domain.PileReservationsFilter) ([]*domain.Reservation, error) {
	r.lastFilter = filter
	return r.byPile, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sample(id, userID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		PileID:          1,
		LocationID:      10,
		UserID:          userID,
		VehicleID:       5,
		ReservationDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("09:00"),
		EndTime:         types.TimeString("10:00"),
		Status:          domain.StatusReserved,
		PileName:        "A-01",
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Reservation{1: sample(1, 100)}}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "reserved", resp.Status)

	_, err = svc.GetByID(ctx, 2, 100)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// Чужое бронирование недоступно
	_, err = svc.GetByID(ctx, 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetUserReservations(t *testing.T) {
	repo := &fakeRepo{byUser: []*domain.Reservation{sample(1, 100), sample(2, 100)}}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	resp, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)
	assert.Nil(t, repo.lastStatus)

	// Фильтр по статусу передаётся в репозиторий
	_, err = svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{
		UserID: 100,
		Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.lastStatus)

	// Некорректный статус отклоняется
	_, err = svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{
		UserID: 100,
		Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetPileReservations(t *testing.T) {
	repo := &fakeRepo{byPile: []*domain.Reservation{sample(1, 100)}}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetPileReservations(ctx, &models.GetPileReservationsRequest{
		PileID:          1,
		Date:            &date,
		IncludeTerminal: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	assert.Equal(t, int64(1), repo.lastFilter.PileID)
	require.NotNil(t, repo.lastFilter.Date)
	assert.True(t, repo.lastFilter.IncludeTerminal)

	_, err = svc.GetPileReservations(ctx, &models.GetPileReservationsRequest{PileID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
