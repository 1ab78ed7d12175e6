package start_session

// StartSessionResponse HTTP response model
type StartSessionResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
