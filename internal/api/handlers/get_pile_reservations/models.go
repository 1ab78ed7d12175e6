package get_pile_reservations

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

// PileReservationsResponse HTTP response model: журнал бронирований столба
type PileReservationsResponse struct {
	PileID       int64                 `json:"pileId"`
	Reservations []ReservationResponse `json:"reservations"`
}

// ReservationResponse запись журнала
type ReservationResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	VehicleID int64  `json:"vehicleId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	ActivatedAt *string `json:"activatedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(pileID int64, resp *models.ReservationListResponse) *PileReservationsResponse {
	result := make([]ReservationResponse, len(resp.Reservations))
	for i, rsv := range resp.Reservations {
		result[i] = ReservationResponse{
			ID:          rsv.ID,
			UserID:      rsv.UserID,
			VehicleID:   rsv.VehicleID,
			Date:        rsv.Date.Format(domain.DateFormat),
			StartTime:   rsv.StartTime,
			EndTime:     rsv.EndTime,
			Status:      rsv.Status,
			ActivatedAt: formatTime(rsv.ActivatedAt),
			CompletedAt: formatTime(rsv.CompletedAt),
			CancelledAt: formatTime(rsv.CancelledAt),
		}
	}
	return &PileReservationsResponse{PileID: pileID, Reservations: result}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
