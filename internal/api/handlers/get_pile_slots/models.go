package get_pile_slots

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	getPileSlots "github.com/m04kA/SMC-ChargingService/internal/usecase/get_pile_slots"
)

// PileSlotsResponse HTTP response model
type PileSlotsResponse struct {
	PileID           int64  `json:"pileId"`
	Date             string `json:"date"`
	SlotWidthMinutes int    `json:"slotWidthMinutes"`
	Slots            []Slot `json:"slots"`
}

// Slot модель слота календаря
type Slot struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Occupancy     string `json:"occupancy"` // free | reserved | active
	ReservationID *int64 `json:"reservationId,omitempty"`
	Mine          bool   `json:"mine"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(pileID int64, dateStr string, viewerUserID *int64) (*getPileSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getPileSlots.Request{
		PileID:       pileID,
		Date:         date,
		ViewerUserID: viewerUserID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPileSlots.Response) *PileSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:     slot.StartTime.String(),
			EndTime:       slot.EndTime.String(),
			Occupancy:     string(slot.Occupancy),
			ReservationID: slot.ReservationID,
			Mine:          slot.Mine,
		}
	}

	return &PileSlotsResponse{
		PileID:           resp.PileID,
		Date:             resp.Date.Format(domain.DateFormat),
		SlotWidthMinutes: resp.SlotWidthMinutes,
		Slots:            slots,
	}
}
