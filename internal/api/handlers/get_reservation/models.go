package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

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

	CancellationReason *string `json:"cancellationReason,omitempty"`

	ActivatedAt *string `json:"activatedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationResponse) *ReservationResponse {
	return &ReservationResponse{
		ID:                 resp.ID,
		PileID:             resp.PileID,
		LocationID:         resp.LocationID,
		UserID:             resp.UserID,
		VehicleID:          resp.VehicleID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		Status:             resp.Status,
		PileName:           resp.PileName,
		Connector:          resp.Connector,
		CancellationReason: resp.CancellationReason,
		ActivatedAt:        formatTime(resp.ActivatedAt),
		CompletedAt:        formatTime(resp.CompletedAt),
		CancelledAt:        formatTime(resp.CancelledAt),
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
