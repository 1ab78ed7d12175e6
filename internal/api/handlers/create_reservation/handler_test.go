package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChargingService/internal/domain"
	createReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

type fakeUseCase struct {
	lastReq *createReservation.Request
	resp    *createReservation.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"pileId":1,"vehicleId":5,"date":"2026-09-02","startTime":"09:00","endTime":"10:00"}`

func doRequest(t *testing.T, uc CreateReservationUseCase, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	protected := middleware.Auth(http.HandlerFunc(handler.Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:         42,
		PileID:     1,
		LocationID: 10,
		UserID:     100,
		VehicleID:  5,
		Date:       time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("10:00"),
		Status:     "reserved",
		PileName:   "A-01",
	}}

	rec := doRequest(t, uc, validBody, "100")

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "reserved", resp.Status)
	assert.Equal(t, "2026-09-02", resp.Date)

	// Пользователь берётся из заголовка, а не из тела
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(100), uc.lastReq.UserID)
}

// Последний слот круглосуточного столба заканчивается в "24:00":
// такая правая граница проходит конвертацию и доходит до use case.
func TestHandler_EndOfDayInterval(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:         43,
		PileID:     1,
		LocationID: 10,
		UserID:     100,
		VehicleID:  5,
		Date:       time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("23:00"),
		EndTime:    domain.DayEnd,
		Status:     "reserved",
		PileName:   "A-01",
	}}

	body := `{"pileId":1,"vehicleId":5,"date":"2026-09-02","startTime":"23:00","endTime":"24:00"}`
	rec := doRequest(t, uc, body, "100")

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, types.TimeString("23:00"), uc.lastReq.StartTime)
	assert.Equal(t, domain.DayEnd, uc.lastReq.EndTime)

	// А в качестве левой границы "24:00" не валиден
	body = `{"pileId":1,"vehicleId":5,"date":"2026-09-02","startTime":"24:00","endTime":"24:00"}`
	rec = doRequest(t, &fakeUseCase{}, body, "100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MissingUserHeader(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, validBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"pileId":`, "100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, &fakeUseCase{}, `{"pileId":1,"vehicleId":5,"date":"02.09.2026","startTime":"09:00","endTime":"10:00"}`, "100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ConflictIncludesBlockingReservation(t *testing.T) {
	uc := &fakeUseCase{err: &createReservation.ConflictError{ReservationID: 17}}

	rec := doRequest(t, uc, validBody, "100")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(17), resp.ConflictingReservationID)
	assert.NotEmpty(t, resp.Message)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"pile not found", createReservation.ErrPileNotFound, http.StatusNotFound},
		{"vehicle not found", createReservation.ErrVehicleNotFound, http.StatusNotFound},
		{"pile out of service", createReservation.ErrPileUnavailable, http.StatusConflict},
		{"invalid date", createReservation.ErrInvalidDate, http.StatusBadRequest},
		{"invalid interval", createReservation.ErrInvalidInterval, http.StatusBadRequest},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody, "100")
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
