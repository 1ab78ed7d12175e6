package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

var reservationColumns = []string{
	"id",
	"pile_id",
	"location_id",
	"user_id",
	"vehicle_id",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"pile_name",
	"connector",
	"cancellation_reason",
	"activated_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями зарядных столбов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе reserved.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Проверка доступности интервала и вставка ДОЛЖНЫ выполняться в одной
// serializable-транзакции: выборка GetByPileWithFilter внутри транзакции
// блокирует строки столба (FOR UPDATE) и сериализует конкурирующие
// бронирования одного столба, не задевая остальные столбы.
func (r *Repository) Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"pile_id",
			"location_id",
			"user_id",
			"vehicle_id",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
			"pile_name",
			"connector",
		).
		Values(
			rsv.PileID,
			rsv.LocationID,
			rsv.UserID,
			rsv.VehicleID,
			rsv.ReservationDate,
			rsv.StartTime,
			rsv.EndTime,
			rsv.Status,
			rsv.PileName,
			rsv.Connector,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rsv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return rsv, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rsv, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return rsv, nil
}

// GetByUserID получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByPileWithFilter получает бронирования столба с фильтрацией по дате
// и статусу.
//
// Внутри транзакции с фильтром по конкретной дате добавляет FOR UPDATE:
// это точка сериализации бронирований одного столба. Конкурирующий
// create для того же столба и даты встанет в очередь на этих строках,
// бронирования других столбов проходят параллельно.
func (r *Repository) GetByPileWithFilter(ctx context.Context, filter domain.PileReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"pile_id": filter.PileID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyBlocking {
		blockingStatusStrings := make([]string, len(domain.BlockingStatuses))
		for i, s := range domain.BlockingStatuses {
			blockingStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": blockingStatusStrings})
	} else if !filter.IncludeTerminal {
		terminalStatusStrings := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminalStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPileWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPileWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetExpiredReserved получает reserved-бронирования, интервал которых
// закончился: либо дата в прошлом, либо сегодня и end_time <= endBefore.
// Используется sweeper'ом для отмены no-show бронирований.
func (r *Repository) GetExpiredReserved(ctx context.Context, today time.Time, endBefore types.TimeString) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		Where(squirrel.Or{
			squirrel.Lt{"reservation_date": today},
			squirrel.And{
				squirrel.Eq{"reservation_date": today},
				squirrel.LtOrEq{"end_time": endBefore},
			},
		}).
		OrderBy("reservation_date ASC, end_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredReserved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredReserved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Activate переводит бронирование reserved -> active и ставит activated_at.
// Переход выполняется одним compare-and-set UPDATE: условие на текущий
// статус в WHERE сериализует конкурирующие переходы по одному id на
// уровне строки. Если статус уже не reserved, вернёт ErrTransitionNotApplied.
func (r *Repository) Activate(ctx context.Context, id int64) error {
	return r.transition(ctx, "Activate", id, domain.StatusReserved, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.
			Set("status", domain.StatusActive).
			Set("activated_at", squirrel.Expr("NOW()"))
	})
}

// Complete переводит бронирование active -> completed и ставит completed_at
func (r *Repository) Complete(ctx context.Context, id int64) error {
	return r.transition(ctx, "Complete", id, domain.StatusActive, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.
			Set("status", domain.StatusCompleted).
			Set("completed_at", squirrel.Expr("NOW()"))
	})
}

// Cancel переводит бронирование из reserved или active в cancelled
// с указанием причины и ставит cancelled_at
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatusStrings := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blockingStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": blockingStatusStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTransitionNotApplied
	}

	return nil
}

// transition общий compare-and-set переход статуса
func (r *Repository) transition(
	ctx context.Context,
	op string,
	id int64,
	from domain.ReservationStatus,
	apply func(squirrel.UpdateBuilder) squirrel.UpdateBuilder,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := apply(psqlbuilder.Update("reservations")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrTransitionNotApplied
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в модель бронирования
func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var rsv domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rsv.ID,
		&rsv.PileID,
		&rsv.LocationID,
		&rsv.UserID,
		&rsv.VehicleID,
		&rsv.ReservationDate,
		&rsv.StartTime,
		&rsv.EndTime,
		&rsv.Status,
		&rsv.PileName,
		&rsv.Connector,
		&rsv.CancellationReason,
		&rsv.ActivatedAt,
		&rsv.CompletedAt,
		&rsv.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return &rsv, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		rsv, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
