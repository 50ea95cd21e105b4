// Package repository содержит доступ к хранилищу расписаний поверх
// PostgreSQL. Массовые операции над месяцем выполняются в одной
// транзакции: частично записанный месяц не должен быть наблюдаем.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// lockMonth берёт advisory-блокировку транзакции на (филиал, год, месяц).
// Сериализует всех писателей одного месяца: генерацию, копирование,
// сброс и восстановление.
func lockMonth(ctx context.Context, tx pgx.Tx, branchID string, year, month int) error {
	key := fmt.Sprintf("%s_%d_%d", branchID, year, month)

	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1)::bigint)`, key)
	if err != nil {
		return fmt.Errorf("lock month %s: %w", key, err)
	}

	return nil
}
