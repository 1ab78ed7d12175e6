package sessions

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/infra/queue"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Activate(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// EventPublisher интерфейс публикации событий завершённых сессий.
// Может быть nil, если публикация событий выключена в конфигурации.
type EventPublisher interface {
	PublishSessionCompleted(ctx context.Context, event queue.SessionCompletedEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
