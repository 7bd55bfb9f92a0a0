package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий недельных расписаний менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает расписание ментора вместе с днями и слотами.
// Слоты каждого дня возвращаются в порядке position.
func (r *Repository) Get(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"mentor_id",
		"status",
		"committed_at",
		"created_at",
		"updated_at",
	).
		From("mentor_schedules").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	schedule := &domain.MentorSchedule{Week: domain.NewWeekSchedule()}
	var committedAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.MentorID,
		&schedule.Status,
		&committedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %w", ErrScanRow, err)
	}

	if committedAt.Valid {
		t := committedAt.Time
		schedule.CommittedAt = &t
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if err := r.loadDays(ctx, executor, schedule); err != nil {
		return nil, err
	}
	if err := r.loadSlots(ctx, executor, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) loadDays(ctx context.Context, executor DBExecutor, schedule *domain.MentorSchedule) error {
	query, args, err := psqlbuilder.Select("day_of_week", "is_active").
		From("mentor_schedule_days").
		Where(squirrel.Eq{"mentor_id": schedule.MentorID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Get - build days query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Get - execute days query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var active bool
		if err := rows.Scan(&day, &active); err != nil {
			return fmt.Errorf("%w: Get - scan day: %w", ErrScanRow, err)
		}
		ds := schedule.Week.Day(domain.DayOfWeek(day))
		if ds == nil {
			return fmt.Errorf("%w: day_of_week %d", ErrCorruptedData, day)
		}
		ds.Active = active
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Get - days rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, schedule *domain.MentorSchedule) error {
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
	).
		From("mentor_schedule_slots").
		Where(squirrel.Eq{"mentor_id": schedule.MentorID}).
		OrderBy("day_of_week ASC", "position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Get - build slots query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Get - execute slots query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var slot domain.Slot
		if err := rows.Scan(&day, &slot.Start, &slot.End, &slot.Available); err != nil {
			return fmt.Errorf("%w: Get - scan slot: %w", ErrScanRow, err)
		}
		ds := schedule.Week.Day(domain.DayOfWeek(day))
		if ds == nil {
			return fmt.Errorf("%w: day_of_week %d", ErrCorruptedData, day)
		}
		ds.Slots = append(ds.Slots, slot)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Get - slots rows error: %w", ErrScanRow, err)
	}

	return nil
}

// Save сохраняет расписание целиком: заголовок (upsert), затем дни и слоты заменяются.
// Вызывать внутри транзакции, иначе при ошибке расписание может сохраниться частично.
func (r *Repository) Save(ctx context.Context, schedule *domain.MentorSchedule) (*domain.MentorSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var committedAt interface{}
	if schedule.CommittedAt != nil {
		committedAt = *schedule.CommittedAt
	}

	// 1. Заголовок
	query, args, err := psqlbuilder.Insert("mentor_schedules").
		Columns("mentor_id", "status", "committed_at").
		Values(schedule.MentorID, schedule.Status, committedAt).
		Suffix("ON CONFLICT (mentor_id) DO UPDATE SET status = EXCLUDED.status, " +
			"committed_at = EXCLUDED.committed_at, updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	// 2. Удаляем старые слоты и дни
	for _, table := range []string{"mentor_schedule_slots", "mentor_schedule_days"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"mentor_id": schedule.MentorID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Save - build delete %s: %w", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Save - delete %s: %w", ErrExecQuery, table, err)
		}
	}

	// 3. Дни
	daysInsert := psqlbuilder.Insert("mentor_schedule_days").
		Columns("mentor_id", "day_of_week", "is_active")
	for _, d := range schedule.Week.Days {
		daysInsert = daysInsert.Values(schedule.MentorID, int(d.Day), d.Active)
	}

	query, args, err = daysInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build days insert: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Save - insert days: %w", ErrExecQuery, err)
	}

	// 4. Слоты
	if schedule.Week.TotalSlots() == 0 {
		return schedule, nil
	}

	slotsInsert := psqlbuilder.Insert("mentor_schedule_slots").
		Columns("mentor_id", "day_of_week", "position", "start_time", "end_time", "is_available")
	for _, d := range schedule.Week.Days {
		for i, s := range d.Slots {
			slotsInsert = slotsInsert.Values(schedule.MentorID, int(d.Day), i, s.Start, s.End, s.Available)
		}
	}

	query, args, err = slotsInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build slots insert: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Save - insert slots: %w", ErrExecQuery, err)
	}

	return schedule, nil
}

// MarkCommitted переводит расписание в статус committed
func (r *Repository) MarkCommitted(ctx context.Context, mentorID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mentor_schedules").
		Set("status", domain.StatusCommitted).
		Set("committed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCommitted - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCommitted - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCommitted - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
