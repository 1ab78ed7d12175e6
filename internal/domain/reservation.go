package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "reserved"
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// transitions таблица допустимых переходов жизненного цикла.
// Любой переход, которого здесь нет, нелегален.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusReserved:  {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo проверяет допустимость перехода по таблице
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для конечных статусов (completed, cancelled)
func (s ReservationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsBlocking возвращает true, если бронирование в этом статусе занимает
// интервал на столбе (учитывается при проверке пересечений)
func (s ReservationStatus) IsBlocking() bool {
	return s == StatusReserved || s == StatusActive
}

// ParseReservationStatus валидирует и конвертирует строковый статус
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusReserved, StatusActive, StatusCompleted, StatusCancelled:
		return ReservationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// Reservation represents a booking of a charging pile for a time interval.
// Rows are never physically deleted: cancellation and completion are
// status changes, the record stays as history.
type Reservation struct {
	ID         int64
	PileID     int64
	LocationID int64 // ID зарядной площадки, к которой относится столб
	UserID     int64
	VehicleID  int64

	ReservationDate time.Time
	StartTime       types.TimeString // включительно
	EndTime         types.TimeString // не включительно, [start, end)
	Status          ReservationStatus

	// Denormalized pile data for history
	PileName  string
	Connector *string

	CancellationReason *string

	ActivatedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования
func (r *Reservation) Interval() TimeRange {
	return TimeRange{Start: r.StartTime, End: r.EndTime}
}

// IsBlocking returns true if the reservation occupies its interval
func (r *Reservation) IsBlocking() bool {
	return r.Status.IsBlocking()
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status.CanTransitionTo(StatusCancelled)
}

// CanBeStarted returns true if a charging session can be started
func (r *Reservation) CanBeStarted() bool {
	return r.Status.CanTransitionTo(StatusActive)
}

// CanBeStopped returns true if the active session can be stopped
func (r *Reservation) CanBeStopped() bool {
	return r.Status.CanTransitionTo(StatusCompleted)
}

// PileReservationsFilter фильтр для выборки бронирований столба
type PileReservationsFilter struct {
	PileID          int64              // Обязательный параметр
	Date            *time.Time         // Дата (опционально, если nil - все даты)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	OnlyBlocking    bool               // Только занимающие интервал (reserved, active)
	IncludeTerminal bool               // Включать ли завершённые и отменённые
}
