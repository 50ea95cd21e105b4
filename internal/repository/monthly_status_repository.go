package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

type MonthlyStatusRepository struct {
	pool *pgxpool.Pool
}

func NewMonthlyStatusRepository(pool *pgxpool.Pool) *MonthlyStatusRepository {
	return &MonthlyStatusRepository{pool: pool}
}

// Get получает статус месяца филиала.
// Возвращает nil если месяц не формировался.
func (r *MonthlyStatusRepository) Get(ctx context.Context, branchID string, year, month int) (*model.MonthlyStatus, error) {
	query := `
		SELECT branch_id, year, month, is_saved, created_at, created_by
		FROM monthly_statuses
		WHERE branch_id = $1 AND year = $2 AND month = $3
	`

	var status model.MonthlyStatus
	err := r.pool.QueryRow(ctx, query, branchID, year, month).Scan(
		&status.BranchID,
		&status.Year,
		&status.Month,
		&status.IsSaved,
		&status.CreatedAt,
		&status.CreatedBy,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly status: %w", err)
	}

	return &status, nil
}
