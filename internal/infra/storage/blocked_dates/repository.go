package blocked_dates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения UNIQUE
const uniqueViolation = "23505"

var selectColumns = []string{"id", "mentor_id", "blocked_date", "reason", "created_at"}

// Repository репозиторий заблокированных дат менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create блокирует дату. Повторная блокировка той же даты - ErrDuplicateDate.
func (r *Repository) Create(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var reason sql.NullString
	if blocked.Reason != "" {
		reason = sql.NullString{String: blocked.Reason, Valid: true}
	}

	query, args, err := psqlbuilder.Insert("mentor_blocked_dates").
		Columns("mentor_id", "blocked_date", "reason").
		Values(blocked.MentorID, domain.DateOnly(blocked.Date), reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, blocked.Date.Format(domain.DateFormat))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	blocked.Date = domain.DateOnly(blocked.Date)
	blocked.CreatedAt = createdAt.Time

	return blocked, nil
}

// GetByID получает заблокированную дату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("mentor_blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	blocked, err := scanBlockedDate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked date: %w", ErrScanRow, err)
	}

	return blocked, nil
}

// ListByMentor возвращает заблокированные даты ментора в диапазоне [from, to], по возрастанию.
// Нулевые from/to не ограничивают диапазон.
func (r *Repository) ListByMentor(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("mentor_blocked_dates").
		Where(squirrel.Eq{"mentor_id": mentorID})

	if !from.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"blocked_date": domain.DateOnly(from)})
	}
	if !to.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"blocked_date": domain.DateOnly(to)})
	}

	query, args, err := builder.OrderBy("blocked_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		blocked, err := scanBlockedDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMentor - scan row: %w", ErrScanRow, err)
		}
		result = append(result, blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ExistsOnDate проверяет, заблокирована ли дата у ментора
func (r *Repository) ExistsOnDate(ctx context.Context, mentorID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("mentor_blocked_dates").
		Where(squirrel.Eq{"mentor_id": mentorID, "blocked_date": domain.DateOnly(date)}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsOnDate - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOnDate - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// Delete удаляет заблокированную дату
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("mentor_blocked_dates").
		Where(squirrel.Eq{"id": id}).
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
		return ErrBlockedDateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlockedDate(row rowScanner) (*domain.BlockedDate, error) {
	var blocked domain.BlockedDate
	var reason sql.NullString
	var createdAt sql.NullTime

	if err := row.Scan(&blocked.ID, &blocked.MentorID, &blocked.Date, &reason, &createdAt); err != nil {
		return nil, err
	}

	blocked.Date = domain.DateOnly(blocked.Date)
	blocked.Reason = reason.String
	blocked.CreatedAt = createdAt.Time

	return &blocked, nil
}
