package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// GetByBranch получает недельный шаблон филиала.
// Возвращает nil если шаблон не задан.
func (r *TemplateRepository) GetByBranch(ctx context.Context, branchID string) (*model.WeeklyTemplate, error) {
	query := `
		SELECT weekday, start_time, title, instructor, duration_minutes, level
		FROM weekly_template_entries
		WHERE branch_id = $1
		ORDER BY weekday, start_time, position
	`

	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("get template by branch: %w", err)
	}
	defer rows.Close()

	var entries []model.TemplateEntry
	for rows.Next() {
		var entry model.TemplateEntry
		var weekday int
		err := rows.Scan(
			&weekday,
			&entry.StartTime,
			&entry.Title,
			&entry.Instructor,
			&entry.Duration,
			&entry.Level,
		)
		if err != nil {
			return nil, fmt.Errorf("scan template entry: %w", err)
		}
		entry.Weekday = time.Weekday(weekday)
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	return &model.WeeklyTemplate{BranchID: branchID, Entries: entries}, nil
}

// ReplaceForBranch полностью заменяет недельный шаблон филиала
// в одной транзакции
func (r *TemplateRepository) ReplaceForBranch(ctx context.Context, tmpl *model.WeeklyTemplate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM weekly_template_entries WHERE branch_id = $1`, tmpl.BranchID)
	if err != nil {
		return fmt.Errorf("delete template entries: %w", err)
	}

	query := `
		INSERT INTO weekly_template_entries (branch_id, weekday, start_time, title, instructor, duration_minutes, level, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, entry := range tmpl.Entries {
		_, err = tx.Exec(ctx, query,
			tmpl.BranchID,
			int(entry.Weekday),
			entry.StartTime,
			entry.Title,
			entry.Instructor,
			entry.Duration,
			entry.Level,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert template entry: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
