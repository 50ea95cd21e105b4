package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// BackupService выполняет сброс месяца со страховочным снапшотом и
// восстановление из снапшота. Сброс — сага из трёх шагов:
// снять снапшот, убедиться что он читается, и только потом удалять.
type BackupService struct {
	days     DailyScheduleStore
	statuses MonthlyStatusStore
	backups  BackupStore
	cache    ScheduleCache
	logger   *zap.Logger
}

func NewBackupService(
	days DailyScheduleStore,
	statuses MonthlyStatusStore,
	backups BackupStore,
	cache ScheduleCache,
	logger *zap.Logger,
) *BackupService {
	return &BackupService{
		days:     days,
		statuses: statuses,
		backups:  backups,
		cache:    cache,
		logger:   logger,
	}
}

// Reset снимает снапшот месяца и удаляет все его дневные расписания
// вместе с месячным статусом. Любая ошибка до подтверждения снапшота
// прерывает сброс — удаление без восстановимой копии недопустимо.
// Возвращает созданный снапшот.
func (s *BackupService) Reset(ctx context.Context, branchID string, year, month int) (*model.BackupSnapshot, error) {
	days, err := s.days.GetMonth(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: read month %d-%02d: %v", ErrBackupCaptureFailed, year, month, err)
	}

	status, err := s.statuses.Get(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: read monthly status: %v", ErrBackupCaptureFailed, err)
	}

	if len(days) == 0 && status == nil {
		return nil, fmt.Errorf("%w: branch %s has no schedule for %d-%02d", ErrNotFound, branchID, year, month)
	}

	snap := &model.BackupSnapshot{
		ID:        uuid.New(),
		BranchID:  branchID,
		Year:      year,
		Month:     month,
		CreatedAt: time.Now(),
		Days:      make(map[string][]model.ClassInstance, len(days)),
	}
	for _, day := range days {
		snap.Days[day.DateString()] = day.Classes
	}

	err = s.backups.Create(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupCaptureFailed, err)
	}

	// Шаг проверки: снапшот должен читаться до начала удаления
	stored, err := s.backups.GetByID(ctx, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: verify snapshot: %v", ErrBackupCaptureFailed, err)
	}
	if stored == nil || len(stored.Days) != len(snap.Days) {
		return nil, fmt.Errorf("%w: snapshot %s did not verify", ErrBackupCaptureFailed, snap.ID)
	}

	deleted, err := s.days.DeleteMonth(ctx, branchID, year, month)
	if err != nil {
		// снапшот уже снят и остаётся в кольце, месяц цел
		s.logger.Error("Month delete failed after snapshot, snapshot retained",
			zap.String("branch_id", branchID),
			zap.Int("year", year),
			zap.Int("month", month),
			zap.String("backup_id", snap.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("delete month %d-%02d: %w", year, month, err)
	}

	s.cache.InvalidateBranch(branchID)

	s.logger.Info("Month reset",
		zap.String("branch_id", branchID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("backup_id", snap.ID.String()),
		zap.Int64("days_deleted", deleted),
	)

	return snap, nil
}

// Restore восстанавливает месяц из снапшота и помечает его
// сформированным. Снапшот не потребляется — восстановление можно
// повторять.
func (s *BackupService) Restore(ctx context.Context, branchID string, year, month int, backupID uuid.UUID) error {
	snap, err := s.backups.GetByID(ctx, backupID)
	if err != nil {
		return fmt.Errorf("get backup snapshot: %w", err)
	}

	if snap == nil || snap.BranchID != branchID || snap.Year != year || snap.Month != month {
		return fmt.Errorf("%w: backup %s for branch %s %d-%02d", ErrNotFound, backupID, branchID, year, month)
	}

	days := make([]*model.DailySchedule, 0, len(snap.Days))
	for dateStr, classes := range snap.Days {
		date, err := time.Parse(model.DateLayout, dateStr)
		if err != nil {
			return fmt.Errorf("parse snapshot date %q: %w", dateStr, err)
		}

		days = append(days, &model.DailySchedule{
			BranchID: branchID,
			Date:     date,
			Classes:  classes,
		})
	}

	status := &model.MonthlyStatus{
		BranchID:  branchID,
		Year:      year,
		Month:     month,
		IsSaved:   true,
		CreatedAt: time.Now(),
		CreatedBy: "restore:" + backupID.String(),
	}

	err = s.days.ReplaceMonth(ctx, branchID, year, month, days, status)
	if err != nil {
		return fmt.Errorf("restore month %d-%02d: %w", year, month, err)
	}

	s.cache.InvalidateBranch(branchID)

	s.logger.Info("Month restored from snapshot",
		zap.String("branch_id", branchID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("backup_id", backupID.String()),
		zap.Int("days", len(days)),
	)

	return nil
}

// ListBackups возвращает снапшоты месяца, новые первыми
func (s *BackupService) ListBackups(ctx context.Context, branchID string, year, month int) ([]*model.BackupSnapshot, error) {
	snaps, err := s.backups.ListByMonth(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return snaps, nil
}
