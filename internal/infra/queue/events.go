// Package queue публикация доменных событий в RabbitMQ.
// Потребитель завершённых сессий - подсистема начисления баллов.
package queue

// SessionCompletedQueue имя очереди завершённых зарядных сессий
const SessionCompletedQueue = "charging.session.completed"

// SessionCompletedEvent публикуется при завершении зарядной сессии.
// Содержит достаточно данных, чтобы потребители (начисление баллов,
// аналитика) не ходили в основную БД.
type SessionCompletedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	PileID        int64  `json:"pile_id"`
	LocationID    int64  `json:"location_id"`
	UserID        int64  `json:"user_id"`
	VehicleID     int64  `json:"vehicle_id"`
	PileName      string `json:"pile_name"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM
	EndTime       string `json:"end_time"`   // HH:MM
	ActivatedAt   string `json:"activated_at,omitempty"`
	CompletedAt   string `json:"completed_at"`
}
