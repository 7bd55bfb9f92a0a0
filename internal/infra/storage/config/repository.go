package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с конфигурацией расписания менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentor получает конфигурацию ментора.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) (*domain.MentorScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"mentor_id",
		"buffer_minutes",
		"max_slots_per_day",
		"min_session_minutes",
		"business_start",
		"business_end",
		"created_at",
		"updated_at",
	).
		From("mentor_schedule_config").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - build select query: %w", ErrBuildQuery, err)
	}

	var config domain.MentorScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.MentorID,
		&config.Config.BufferMinutes,
		&config.Config.MaxSlotsPerDay,
		&config.Config.MinSessionMinutes,
		&config.Config.BusinessStart,
		&config.Config.BusinessEnd,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - scan config: %w", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert создает или полностью заменяет конфигурацию ментора
func (r *Repository) Upsert(ctx context.Context, config *domain.MentorScheduleConfig) (*domain.MentorScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mentor_schedule_config").
		Columns(
			"mentor_id",
			"buffer_minutes",
			"max_slots_per_day",
			"min_session_minutes",
			"business_start",
			"business_end",
		).
		Values(
			config.MentorID,
			config.Config.BufferMinutes,
			config.Config.MaxSlotsPerDay,
			config.Config.MinSessionMinutes,
			config.Config.BusinessStart,
			config.Config.BusinessEnd,
		).
		Suffix("ON CONFLICT (mentor_id) DO UPDATE SET " +
			"buffer_minutes = EXCLUDED.buffer_minutes, " +
			"max_slots_per_day = EXCLUDED.max_slots_per_day, " +
			"min_session_minutes = EXCLUDED.min_session_minutes, " +
			"business_start = EXCLUDED.business_start, " +
			"business_end = EXCLUDED.business_end, " +
			"updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию ментора, после чего действует конфигурация сервиса
func (r *Repository) Delete(ctx context.Context, mentorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("mentor_schedule_config").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
