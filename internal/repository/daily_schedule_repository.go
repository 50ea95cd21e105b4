package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// DailyScheduleRepository хранит дневные расписания. Транзакционные
// методы (ReplaceMonth, DeleteMonth) также ведут строку месячного
// статуса: в исходной модели данных метазапись месяца пишется тем же
// батчем, что и дни.
type DailyScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewDailyScheduleRepository(pool *pgxpool.Pool) *DailyScheduleRepository {
	return &DailyScheduleRepository{pool: pool}
}

// GetByDate получает расписание филиала на дату.
// Возвращает nil если записи нет.
func (r *DailyScheduleRepository) GetByDate(ctx context.Context, branchID string, date time.Time) (*model.DailySchedule, error) {
	query := `
		SELECT branch_id, date, classes, updated_at
		FROM daily_schedules
		WHERE branch_id = $1 AND date = $2
	`

	var day model.DailySchedule
	err := r.pool.QueryRow(ctx, query, branchID, date).Scan(
		&day.BranchID,
		&day.Date,
		&day.Classes,
		&day.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily schedule: %w", err)
	}

	return &day, nil
}

// GetMonth получает все дневные расписания филиала за месяц,
// отсортированные по дате
func (r *DailyScheduleRepository) GetMonth(ctx context.Context, branchID string, year, month int) ([]*model.DailySchedule, error) {
	query := `
		SELECT branch_id, date, classes, updated_at
		FROM daily_schedules
		WHERE branch_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	from := model.MonthDate(year, month, 1)
	to := from.AddDate(0, 1, 0)

	rows, err := r.pool.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get month schedules: %w", err)
	}
	defer rows.Close()

	var days []*model.DailySchedule
	for rows.Next() {
		var day model.DailySchedule
		err := rows.Scan(
			&day.BranchID,
			&day.Date,
			&day.Classes,
			&day.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily schedule: %w", err)
		}
		days = append(days, &day)
	}

	return days, nil
}

// UpsertDay создаёт или полностью заменяет расписание филиала на дату
func (r *DailyScheduleRepository) UpsertDay(ctx context.Context, day *model.DailySchedule) error {
	query := `
		INSERT INTO daily_schedules (branch_id, date, classes, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (branch_id, date)
		DO UPDATE SET classes = EXCLUDED.classes, updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query, day.BranchID, day.Date, day.Classes)
	if err != nil {
		return fmt.Errorf("upsert daily schedule: %w", err)
	}

	return nil
}

// UpsertDays записывает несколько дневных расписаний в одной транзакции.
// Используется пакетным редактированием дня недели: либо записываются
// все дни, либо ни один.
func (r *DailyScheduleRepository) UpsertDays(ctx context.Context, days []*model.DailySchedule) error {
	if len(days) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	first := days[0]
	err = lockMonth(ctx, tx, first.BranchID, first.Date.Year(), int(first.Date.Month()))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_schedules (branch_id, date, classes, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (branch_id, date)
		DO UPDATE SET classes = EXCLUDED.classes, updated_at = now()
	`

	for _, day := range days {
		_, err = tx.Exec(ctx, query, day.BranchID, day.Date, day.Classes)
		if err != nil {
			return fmt.Errorf("upsert daily schedule %s: %w", day.DateString(), err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ReplaceMonth атомарно заменяет весь месяц: удаляет прежние дни,
// записывает новые и выставляет месячный статус. Повторный вызов
// полностью перезаписывает месяц без слияния.
func (r *DailyScheduleRepository) ReplaceMonth(ctx context.Context, branchID string, year, month int, days []*model.DailySchedule, status *model.MonthlyStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = lockMonth(ctx, tx, branchID, year, month)
	if err != nil {
		return err
	}

	from := model.MonthDate(year, month, 1)
	to := from.AddDate(0, 1, 0)

	_, err = tx.Exec(ctx,
		`DELETE FROM daily_schedules WHERE branch_id = $1 AND date >= $2 AND date < $3`,
		branchID, from, to)
	if err != nil {
		return fmt.Errorf("delete month schedules: %w", err)
	}

	insertQuery := `
		INSERT INTO daily_schedules (branch_id, date, classes, updated_at)
		VALUES ($1, $2, $3, now())
	`

	for _, day := range days {
		_, err = tx.Exec(ctx, insertQuery, day.BranchID, day.Date, day.Classes)
		if err != nil {
			return fmt.Errorf("insert daily schedule %s: %w", day.DateString(), err)
		}
	}

	statusQuery := `
		INSERT INTO monthly_statuses (branch_id, year, month, is_saved, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (branch_id, year, month)
		DO UPDATE SET is_saved = EXCLUDED.is_saved, created_at = EXCLUDED.created_at, created_by = EXCLUDED.created_by
	`

	_, err = tx.Exec(ctx, statusQuery,
		status.BranchID,
		status.Year,
		status.Month,
		status.IsSaved,
		status.CreatedAt,
		status.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert monthly status: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// DeleteMonth атомарно удаляет все дневные расписания месяца вместе
// с месячным статусом. Возвращает число удалённых дней.
func (r *DailyScheduleRepository) DeleteMonth(ctx context.Context, branchID string, year, month int) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = lockMonth(ctx, tx, branchID, year, month)
	if err != nil {
		return 0, err
	}

	from := model.MonthDate(year, month, 1)
	to := from.AddDate(0, 1, 0)

	tag, err := tx.Exec(ctx,
		`DELETE FROM daily_schedules WHERE branch_id = $1 AND date >= $2 AND date < $3`,
		branchID, from, to)
	if err != nil {
		return 0, fmt.Errorf("delete month schedules: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM monthly_statuses WHERE branch_id = $1 AND year = $2 AND month = $3`,
		branchID, year, month)
	if err != nil {
		return 0, fmt.Errorf("delete monthly status: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return tag.RowsAffected(), nil
}
