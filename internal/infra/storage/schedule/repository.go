package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/pkg/dbmetrics"
	"github.com/n1kprav/BRB-BookingService/pkg/psqlbuilder"
	"github.com/n1kprav/BRB-BookingService/pkg/types"
)

// scheduleColumns полный набор колонок таблицы weekly_schedule
var scheduleColumns = []string{
	"id",
	"barber_id",
	"day_of_week",
	"is_work_day",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет конфигурацию одного дня недели
// Ключ уникальности - (barber_id, day_of_week), как и в недельной модели домена
func (r *Repository) Upsert(ctx context.Context, sched *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule").
		Columns(
			"barber_id",
			"day_of_week",
			"is_work_day",
			"start_time",
			"end_time",
			"break_start",
			"break_end",
		).
		Values(
			sched.BarberID,
			sched.DayOfWeek,
			sched.IsWorkDay,
			sched.StartTime,
			sched.EndTime,
			sched.BreakStart,
			sched.BreakEnd,
		).
		Suffix(`ON CONFLICT (barber_id, day_of_week) DO UPDATE SET
			is_work_day = EXCLUDED.is_work_day,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return sched, nil
}

// GetByBarberAndWeekday получает конфигурацию конкретного дня недели
func (r *Repository) GetByBarberAndWeekday(ctx context.Context, barberID uuid.UUID, dayOfWeek int) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"barber_id": barberID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	sched, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndWeekday - scan schedule: %v", ErrScanRow, err)
	}

	return sched, nil
}

// GetAllByBarber получает всю недельную конфигурацию барбера (до 7 строк)
func (r *Repository) GetAllByBarber(ctx context.Context, barberID uuid.UUID) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0)

	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByBarber - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByBarber - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSchedule сканирует одну строку расписания
// Опциональный перерыв читается через Null-обёртки и конвертируется
// в пару указателей: либо оба заданы, либо оба nil
func scanSchedule(row rowScanner) (*domain.WeeklySchedule, error) {
	var sched domain.WeeklySchedule
	var breakStart, breakEnd sql.Null[types.TimeString]
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sched.ID,
		&sched.BarberID,
		&sched.DayOfWeek,
		&sched.IsWorkDay,
		&sched.StartTime,
		&sched.EndTime,
		&breakStart,
		&breakEnd,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if breakStart.Valid && breakEnd.Valid {
		sched.BreakStart = &breakStart.V
		sched.BreakEnd = &breakEnd.V
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time

	return &sched, nil
}
