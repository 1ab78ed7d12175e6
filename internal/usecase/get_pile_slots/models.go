package get_pile_slots

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// Request модель запроса на получение календаря слотов столба
type Request struct {
	PileID int64     // ID зарядного столба
	Date   time.Time // Дата (без времени)

	// ViewerUserID ID запрашивающего пользователя (опционально).
	// Используется только для выставления флага Mine у занятых слотов.
	ViewerUserID *int64
}

// Response модель ответа с календарём слотов
type Response struct {
	PileID           int64
	Date             time.Time
	SlotWidthMinutes int
	Slots            []domain.Slot // Упорядоченное покрытие рабочего окна без разрывов
}
