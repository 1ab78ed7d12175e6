package create_reservation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
	"github.com/m04kA/SMC-ChargingService/pkg/ptr"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// --- Фейки ---

type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1}
}

func (r *fakeReservationRepo) Create(_ context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rsv
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.reservations = append(r.reservations, &stored)

	return &stored, nil
}

func (r *fakeReservationRepo) GetByPileWithFilter(_ context.Context, filter domain.PileReservationsFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Reservation
	for _, rsv := range r.reservations {
		if rsv.PileID != filter.PileID {
			continue
		}
		if filter.Date != nil && !rsv.ReservationDate.Equal(*filter.Date) {
			continue
		}
		if filter.OnlyBlocking && !rsv.IsBlocking() {
			continue
		}
		result = append(result, rsv)
	}
	return result, nil
}

type fakeStationClient struct {
	pile *stationservice.Pile
	err  error
}

func (c *fakeStationClient) GetPile(_ context.Context, _ int64) (*stationservice.Pile, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.pile, nil
}

type fakeFleetClient struct {
	err error
}

func (c *fakeFleetClient) GetVehicle(_ context.Context, userID, vehicleID int64) (*fleetservice.Vehicle, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &fleetservice.Vehicle{ID: vehicleID, UserID: userID}, nil
}

// fakeTxManager сериализует конкурирующие вызовы мьютексом, как это
// делает serializable-транзакция с блокировкой строк столба
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func testPile() *stationservice.Pile {
	return &stationservice.Pile{
		ID:         1,
		LocationID: 10,
		Name:       "A-01",
		Connector:  "Type2",
		PowerKW:    22,
		InService:  true,
	}
}

func newTestUseCase(repo *fakeReservationRepo, station *fakeStationClient) *UseCase {
	uc := NewUseCase(repo, station, &fakeFleetClient{}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// timeAt возвращает "HH:MM" для минуты суток, 1440 -> "24:00"
func timeAt(minutes int) types.TimeString {
	if minutes == 24*60 {
		return domain.DayEnd
	}
	return types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

func testRequest(start, end string) *Request {
	return &Request{
		UserID:    100,
		PileID:    1,
		VehicleID: 5,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

// --- Тесты ---

func TestUseCase_Execute_Success(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})

	resp, err := uc.Execute(context.Background(), testRequest("09:00", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "reserved", resp.Status)
	assert.Equal(t, "A-01", resp.PileName)
	require.NotNil(t, resp.Connector)
	assert.Equal(t, "Type2", *resp.Connector)
}

// Сценарий: бронь 09:00-10:00 создана, пересекающаяся 09:30-10:30
// отклоняется с ID первой брони, граничащая 10:00-11:00 проходит.
func TestUseCase_Execute_ConflictAndBackToBack(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})
	ctx := context.Background()

	first, err := uc.Execute(ctx, testRequest("09:00", "10:00"))
	require.NoError(t, err)

	// Пересекающийся интервал отклоняется с указанием виновника
	_, err = uc.Execute(ctx, testRequest("09:30", "10:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntervalConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.ReservationID)

	// Граничащий интервал не конфликтует: интервалы полуоткрытые
	second, err := uc.Execute(ctx, testRequest("10:00", "11:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUseCase_Execute_ConcurrentSameInterval(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})

	var wg sync.WaitGroup
	errs := make([]error, 2)

	// Два конкурирующих запроса на один интервал одного столба
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), testRequest("12:00", "13:00"))
		}(i)
	}
	wg.Wait()

	// Ровно один выигрывает
	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrIntervalConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	blocking, err := repo.GetByPileWithFilter(context.Background(), domain.PileReservationsFilter{
		PileID:       1,
		OnlyBlocking: true,
	})
	require.NoError(t, err)
	assert.Len(t, blocking, 1)
}

// Круглосуточный столб: интервал до конца суток [23:00, 24:00) бронируется
func TestUseCase_Execute_EndOfDayInterval(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})

	resp, err := uc.Execute(context.Background(), testRequest("23:00", "24:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.DayEnd, resp.EndTime)
}

// Свойство: при любом наборе конкурирующих запросов на один столб
// зафиксированные reserved/active брони попарно не пересекаются,
// а каждый проигравший получает конфликт интервалов.
func TestUseCase_Execute_ConcurrentRandomizedNoOverlap(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})

	// Интервалы на сетке 30 минут, длительностью 30-120 минут.
	// Источник с фиксированным зерном: тест детерминирован.
	rng := rand.New(rand.NewSource(1))
	const attempts = 24

	intervals := make([]domain.TimeRange, attempts)
	for i := range intervals {
		start := rng.Intn(44) * 30
		end := start + (1+rng.Intn(4))*30
		intervals[i] = domain.TimeRange{Start: timeAt(start), End: timeAt(end)}
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := range intervals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testRequest(intervals[i].Start.String(), intervals[i].End.String())
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var successes int
	for i, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, ErrIntervalConflict, "attempt %d [%s, %s)",
			i, intervals[i].Start, intervals[i].End)
	}

	blocking, err := repo.GetByPileWithFilter(context.Background(), domain.PileReservationsFilter{
		PileID:       1,
		OnlyBlocking: true,
	})
	require.NoError(t, err)
	require.Equal(t, successes, len(blocking))
	require.NotEmpty(t, blocking)

	// Зафиксированные брони попарно не пересекаются
	for i := 0; i < len(blocking); i++ {
		for j := i + 1; j < len(blocking); j++ {
			assert.False(t, blocking[i].Interval().Overlaps(blocking[j].Interval()),
				"reservations %d [%s, %s) and %d [%s, %s) overlap",
				blocking[i].ID, blocking[i].StartTime, blocking[i].EndTime,
				blocking[j].ID, blocking[j].StartTime, blocking[j].EndTime)
		}
	}
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"zero pile", func(r *Request) { r.PileID = 0 }, ErrInvalidInput},
		{"zero vehicle", func(r *Request) { r.VehicleID = -1 }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"missing interval", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"date in past", func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"start equals end", func(r *Request) { r.EndTime = r.StartTime }, ErrInvalidInterval},
		{"inverted interval", func(r *Request) {
			r.StartTime = types.TimeString("11:00")
			r.EndTime = types.TimeString("10:00")
		}, ErrInvalidInterval},
		{"too short", func(r *Request) {
			r.StartTime = types.TimeString("09:00")
			r.EndTime = types.TimeString("09:10")
		}, ErrInvalidInterval},
		{"too long", func(r *Request) {
			r.StartTime = types.TimeString("08:00")
			r.EndTime = types.TimeString("20:00")
		}, ErrInvalidInterval},
		{"bad time format", func(r *Request) {
			r.StartTime = types.TimeString("9am")
			r.EndTime = types.TimeString("10:00")
		}, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest("09:00", "10:00")
			tt.mutate(req)

			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_SameDayIsAllowed(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: testPile()})

	req := testRequest("09:00", "10:00")
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // сегодня по testNow

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_OperatingHours(t *testing.T) {
	pile := testPile()
	pile.OpenTime = ptr.Ptr("08:00")
	pile.CloseTime = ptr.Ptr("22:00")

	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: pile})
	ctx := context.Background()

	// Внутри рабочих часов
	_, err := uc.Execute(ctx, testRequest("08:00", "09:00"))
	assert.NoError(t, err)

	// Выходит за границу окна
	_, err = uc.Execute(ctx, testRequest("21:30", "22:30"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = uc.Execute(ctx, testRequest("07:00", "08:30"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestUseCase_Execute_PileNotFound(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{err: stationservice.ErrPileNotFound})

	_, err := uc.Execute(context.Background(), testRequest("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrPileNotFound)
}

func TestUseCase_Execute_PileOutOfService(t *testing.T) {
	pile := testPile()
	pile.InService = false

	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, &fakeStationClient{pile: pile})

	_, err := uc.Execute(context.Background(), testRequest("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrPileUnavailable)
}

func TestUseCase_Execute_VehicleNotFound(t *testing.T) {
	repo := newFakeReservationRepo()
	uc := NewUseCase(repo, &fakeStationClient{pile: testPile()},
		&fakeFleetClient{err: fleetservice.ErrVehicleNotFound}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), testRequest("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestUseCase_Execute_DifferentPilesDoNotConflict(t *testing.T) {
	repo := newFakeReservationRepo()
	pileOne := testPile()
	uc := newTestUseCase(repo, &fakeStationClient{pile: pileOne})
	ctx := context.Background()

	_, err := uc.Execute(ctx, testRequest("09:00", "10:00"))
	require.NoError(t, err)

	// Тот же интервал на другом столбе проходит
	pileTwo := testPile()
	pileTwo.ID = 2
	ucTwo := newTestUseCase(repo, &fakeStationClient{pile: pileTwo})

	req := testRequest("09:00", "10:00")
	req.PileID = 2
	_, err = ucTwo.Execute(ctx, req)
	assert.NoError(t, err)
}
