package stationservice

// Pile модель зарядного столба из StationService
type Pile struct {
	ID         int64   `json:"id"`
	LocationID int64   `json:"location_id"`
	Name       string  `json:"name"`
	Connector  string  `json:"connector"` // Тип разъёма (например, "Type2")
	PowerKW    float64 `json:"power_kw"`
	InService  bool    `json:"in_service"`

	// Рабочие часы столба. Если не заданы, столб доступен круглосуточно.
	OpenTime  *string `json:"open_time,omitempty"`  // "HH:MM"
	CloseTime *string `json:"close_time,omitempty"` // "HH:MM", "24:00" = до конца суток
}

// Location модель зарядной площадки из StationService
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrorResponse модель ошибки от StationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
