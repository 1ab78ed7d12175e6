package stop_session

// StopSessionResponse HTTP response model
type StopSessionResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
