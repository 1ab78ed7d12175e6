package slotsettings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var settingsColumns = []string{
	"id",
	"location_id",
	"pile_id",
	"slot_width_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек ширины слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWithHierarchy получает настройки с учётом иерархии приоритетов:
// сначала настройка конкретного столба, затем настройка площадки.
// Если ни одной записи нет, возвращает ErrSettingsNotFound -
// вызывающий код подставляет domain.DefaultSlotWidthMinutes.
func (r *Repository) GetWithHierarchy(ctx context.Context, locationID int64, pileID *int64) (*domain.PileSlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(settingsColumns...).
		From("pile_slot_settings").
		Where(squirrel.Eq{"location_id": locationID})

	if pileID != nil {
		// Настройка столба приоритетнее настройки площадки
		selectBuilder = selectBuilder.
			Where(squirrel.Or{
				squirrel.Eq{"pile_id": *pileID},
				squirrel.Eq{"pile_id": nil},
			}).
			OrderBy("pile_id ASC NULLS LAST")
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"pile_id": nil})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	settings, err := r.scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - scan settings: %v", ErrScanRow, err)
	}

	return settings, nil
}

// GetAllByLocation получает все настройки площадки (и площадки целиком,
// и отдельных столбов)
func (r *Repository) GetAllByLocation(ctx context.Context, locationID int64) ([]*domain.PileSlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("pile_slot_settings").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("pile_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.PileSlotSettings, 0)
	for rows.Next() {
		settings, err := r.scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByLocation - scan row: %v", ErrScanRow, err)
		}
		result = append(result, settings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByLocation - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет настройки для пары (location_id, pile_id)
func (r *Repository) Upsert(ctx context.Context, settings *domain.PileSlotSettings) (*domain.PileSlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pile_slot_settings").
		Columns("location_id", "pile_id", "slot_width_minutes").
		Values(settings.LocationID, settings.PileID, settings.SlotWidthMinutes).
		Suffix(`ON CONFLICT (location_id, COALESCE(pile_id, 0))
			DO UPDATE SET slot_width_minutes = EXCLUDED.slot_width_minutes, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSettings(row rowScanner) (*domain.PileSlotSettings, error) {
	var settings domain.PileSlotSettings
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&settings.ID,
		&settings.LocationID,
		&settings.PileID,
		&settings.SlotWidthMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}
