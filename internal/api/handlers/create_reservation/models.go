package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	createReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PileID    int64  `json:"pileId"`
	VehicleID int64  `json:"vehicleId"`
	Date      string `json:"date"`      // "2026-09-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:00", "24:00" допустим как правая граница
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64   `json:"id"`
	PileID     int64   `json:"pileId"`
	LocationID int64   `json:"locationId"`
	UserID     int64   `json:"userId"`
	VehicleID  int64   `json:"vehicleId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	PileName   string  `json:"pileName"`
	Connector  *string `json:"connector,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ConflictResponse HTTP ответ при пересечении интервалов.
// Содержит ID мешающего бронирования.
type ConflictResponse struct {
	Message                  string `json:"message"`
	ConflictingReservationID int64  `json:"conflictingReservationId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	// "24:00" не парсится как время суток, но валиден как правая граница
	endTime := domain.DayEnd
	if r.EndTime != domain.DayEnd.String() {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
	}

	return &createReservation.Request{
		UserID:    userID,
		PileID:    r.PileID,
		VehicleID: r.VehicleID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		PileID:     resp.PileID,
		LocationID: resp.LocationID,
		UserID:     resp.UserID,
		VehicleID:  resp.VehicleID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Status:     resp.Status,
		PileName:   resp.PileName,
		Connector:  resp.Connector,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
