package cancel_reservation

// CancelReservationRequest HTTP request model.
// Тело опционально: отмена без причины допустима.
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
