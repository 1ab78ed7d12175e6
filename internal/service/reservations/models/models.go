package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение истории бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64
	Status *string // Опциональный фильтр по статусу
}

// GetPileReservationsRequest запрос на получение журнала бронирований столба
type GetPileReservationsRequest struct {
	PileID          int64
	Date            *time.Time // Опционально, если nil - все даты
	IncludeTerminal bool       // Включать ли завершённые и отменённые
}

// Response модели

// ReservationResponse бронирование в ответе сервиса
type ReservationResponse struct {
	ID         int64
	PileID     int64
	LocationID int64
	UserID     int64
	VehicleID  int64

	Date      time.Time
	StartTime string
	EndTime   string
	Status    string

	PileName  string
	Connector *string

	CancellationReason *string

	ActivatedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(rsv *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 rsv.ID,
		PileID:             rsv.PileID,
		LocationID:         rsv.LocationID,
		UserID:             rsv.UserID,
		VehicleID:          rsv.VehicleID,
		Date:               rsv.ReservationDate,
		StartTime:          rsv.StartTime.String(),
		EndTime:            rsv.EndTime.String(),
		Status:             string(rsv.Status),
		PileName:           rsv.PileName,
		Connector:          rsv.Connector,
		CancellationReason: rsv.CancellationReason,
		ActivatedAt:        rsv.ActivatedAt,
		CompletedAt:        rsv.CompletedAt,
		CancelledAt:        rsv.CancelledAt,
		CreatedAt:          rsv.CreatedAt,
		UpdatedAt:          rsv.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]*ReservationResponse, len(reservations))
	for i, rsv := range reservations {
		result[i] = FromDomainReservation(rsv)
	}
	return &ReservationListResponse{Reservations: result}
}

// ToDomainReservationStatus валидирует и конвертирует строковый статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status, err := domain.ParseReservationStatus(s)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}
