package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/n1kprav/BRB-BookingService/internal/domain"
	"github.com/n1kprav/BRB-BookingService/pkg/dbmetrics"
	"github.com/n1kprav/BRB-BookingService/pkg/psqlbuilder"
)

// blockColumns полный набор колонок таблицы schedule_blocks
var blockColumns = []string{
	"id",
	"barber_id",
	"starts_at",
	"ends_at",
	"reason",
	"created_at",
}

// Repository репозиторий ручных блокировок расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, blk *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_blocks").
		Columns(
			"barber_id",
			"starts_at",
			"ends_at",
			"reason",
		).
		Values(
			blk.BarberID,
			blk.StartsAt,
			blk.EndsAt,
			blk.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&blk.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	blk.CreatedAt = createdAt.Time

	return blk, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	blk, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return blk, nil
}

// GetOverlappingRange получает блокировки барбера, пересекающие [from, to)
// Формула пересечения та же, что и для записей: starts_at < to AND ends_at > from
//
// Внутри транзакции добавляется FOR UPDATE - проверка занятости слота
// и вставка записи должны видеть согласованное множество блокировок
func (r *Repository) GetOverlappingRange(ctx context.Context, barberID uuid.UUID, from, to time.Time) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// GetActualByBarber получает блокировки барбера, еще не закончившиеся на момент now
func (r *Repository) GetActualByBarber(ctx context.Context, barberID uuid.UUID, now time.Time) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Gt{"ends_at": now}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActualByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActualByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Delete удаляет блокировку барбера
// Условие по barber_id гарантирует, что чужую блокировку удалить нельзя
func (r *Repository) Delete(ctx context.Context, id int64, barberID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_blocks").
		Where(squirrel.Eq{"id": id, "barber_id": barberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBlock сканирует одну блокировку
func scanBlock(row rowScanner) (*domain.ScheduleBlock, error) {
	var blk domain.ScheduleBlock
	var createdAt sql.NullTime

	err := row.Scan(
		&blk.ID,
		&blk.BarberID,
		&blk.StartsAt,
		&blk.EndsAt,
		&blk.Reason,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	blk.StartsAt = blk.StartsAt.UTC()
	blk.EndsAt = blk.EndsAt.UTC()
	blk.CreatedAt = createdAt.Time

	return &blk, nil
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func scanBlocks(rows *sql.Rows) ([]*domain.ScheduleBlock, error) {
	blocks := make([]*domain.ScheduleBlock, 0)

	for rows.Next() {
		blk, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, blk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
