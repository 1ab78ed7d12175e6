package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	PileID    int64            // ID зарядного столба
	VehicleID int64            // ID автомобиля
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало интервала, включительно
	EndTime   types.TimeString // Конец интервала, не включительно
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID созданного бронирования
	PileID     int64            // ID столба
	LocationID int64            // ID площадки
	UserID     int64            // ID пользователя
	VehicleID  int64            // ID автомобиля
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Начало интервала
	EndTime    types.TimeString // Конец интервала
	Status     string           // Статус бронирования

	// Денормализованные данные столба
	PileName  string
	Connector *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
