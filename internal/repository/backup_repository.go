package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// BackupRepository хранит снапшоты месяцев. Глубина кольца на
// (филиал, год, месяц) ограничена model.BackupRingDepth: вставка
// сверх лимита вытесняет самый старый снапшот в той же транзакции.
type BackupRepository struct {
	pool *pgxpool.Pool
}

func NewBackupRepository(pool *pgxpool.Pool) *BackupRepository {
	return &BackupRepository{pool: pool}
}

// Create сохраняет снапшот и вытесняет из кольца всё сверх лимита
func (r *BackupRepository) Create(ctx context.Context, snap *model.BackupSnapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = lockMonth(ctx, tx, snap.BranchID, snap.Year, snap.Month)
	if err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO schedule_backups (id, branch_id, year, month, created_at, days)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, insertQuery,
		snap.ID,
		snap.BranchID,
		snap.Year,
		snap.Month,
		snap.CreatedAt,
		snap.Days,
	)
	if err != nil {
		return fmt.Errorf("insert backup snapshot: %w", err)
	}

	evictQuery := `
		DELETE FROM schedule_backups
		WHERE branch_id = $1 AND year = $2 AND month = $3
		  AND id NOT IN (
			SELECT id FROM schedule_backups
			WHERE branch_id = $1 AND year = $2 AND month = $3
			ORDER BY created_at DESC
			LIMIT $4
		  )
	`

	_, err = tx.Exec(ctx, evictQuery, snap.BranchID, snap.Year, snap.Month, model.BackupRingDepth)
	if err != nil {
		return fmt.Errorf("evict old snapshots: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID получает снапшот по идентификатору.
// Возвращает nil если снапшот не найден или вытеснен из кольца.
func (r *BackupRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BackupSnapshot, error) {
	query := `
		SELECT id, branch_id, year, month, created_at, days
		FROM schedule_backups
		WHERE id = $1
	`

	var snap model.BackupSnapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.BranchID,
		&snap.Year,
		&snap.Month,
		&snap.CreatedAt,
		&snap.Days,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get backup snapshot: %w", err)
	}

	return &snap, nil
}

// ListByMonth получает снапшоты месяца, новые первыми
func (r *BackupRepository) ListByMonth(ctx context.Context, branchID string, year, month int) ([]*model.BackupSnapshot, error) {
	query := `
		SELECT id, branch_id, year, month, created_at, days
		FROM schedule_backups
		WHERE branch_id = $1 AND year = $2 AND month = $3
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list backup snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*model.BackupSnapshot
	for rows.Next() {
		var snap model.BackupSnapshot
		err := rows.Scan(
			&snap.ID,
			&snap.BranchID,
			&snap.Year,
			&snap.Month,
			&snap.CreatedAt,
			&snap.Days,
		)
		if err != nil {
			return nil, fmt.Errorf("scan backup snapshot: %w", err)
		}
		snaps = append(snaps, &snap)
	}

	return snaps, nil
}
