package fleetservice

// Vehicle модель электромобиля из FleetService
type Vehicle struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	PlateNumber string `json:"plate_number"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
}

// ErrorResponse модель ошибки от FleetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
