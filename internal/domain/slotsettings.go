package domain

import "time"

// PileSlotSettings ширина слота календаря для площадки или отдельного столба.
// Иерархия разрешения:
// 1. Настройка конкретного столба (location_id, pile_id)
// 2. Настройка площадки (location_id, NULL)
// 3. DefaultSlotWidthMinutes
type PileSlotSettings struct {
	ID               int64
	LocationID       int64
	PileID           *int64 // NULL = настройка для всех столбов площадки
	SlotWidthMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLocationWide returns true if the settings apply to the whole location
func (s *PileSlotSettings) IsLocationWide() bool {
	return s.PileID == nil
}
