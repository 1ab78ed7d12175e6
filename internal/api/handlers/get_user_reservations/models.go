package get_user_reservations

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

// ReservationListResponse HTTP response model
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ReservationResponse бронирование в списке
type ReservationResponse struct {
	ID         int64   `json:"id"`
	PileID     int64   `json:"pileId"`
	LocationID int64   `json:"locationId"`
	VehicleID  int64   `json:"vehicleId"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	PileName   string  `json:"pileName"`
	Connector  *string `json:"connector,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ReservationListResponse) *ReservationListResponse {
	result := make([]ReservationResponse, len(resp.Reservations))
	for i, rsv := range resp.Reservations {
		result[i] = ReservationResponse{
			ID:                 rsv.ID,
			PileID:             rsv.PileID,
			LocationID:         rsv.LocationID,
			VehicleID:          rsv.VehicleID,
			Date:               rsv.Date.Format(domain.DateFormat),
			StartTime:          rsv.StartTime,
			EndTime:            rsv.EndTime,
			Status:             rsv.Status,
			PileName:           rsv.PileName,
			Connector:          rsv.Connector,
			CancellationReason: rsv.CancellationReason,
			CreatedAt:          rsv.CreatedAt.Format(time.RFC3339),
		}
	}
	return &ReservationListResponse{Reservations: result}
}
