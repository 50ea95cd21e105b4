package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// CopyResult итог копирования месяца из предыдущего
type CopyResult struct {
	BestWeek      int    `json:"best_week"`
	SaturdayCount int    `json:"saturday_count"`
	DaysWritten   int    `json:"days_written"`
	Message       string `json:"message"`
}

// CopyFromPreviousMonth формирует целевой месяц по паттерну,
// выведенному из фактических расписаний месяца-источника: будни из
// самой полной недели источника, субботы по кругу из всех суббот
// источника. Контракт записи тот же, что у Generate: атомарная
// замена месяца плюс месячный статус.
func (s *ScheduleService) CopyFromPreviousMonth(ctx context.Context, branchID string, fromYear, fromMonth, toYear, toMonth int, createdBy string) (*CopyResult, error) {
	sourceDays, err := s.days.GetMonth(ctx, branchID, fromYear, fromMonth)
	if err != nil {
		return nil, fmt.Errorf("get source month %d-%02d: %w", fromYear, fromMonth, err)
	}

	pattern := extractMonthPattern(sourceDays)
	if pattern == nil {
		return nil, fmt.Errorf("%w: branch %s has no classes in %d-%02d", ErrNoSourceData, branchID, fromYear, fromMonth)
	}

	days, classCount := pattern.applyPattern(branchID, toYear, toMonth)

	status := &model.MonthlyStatus{
		BranchID:  branchID,
		Year:      toYear,
		Month:     toMonth,
		IsSaved:   true,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}

	err = s.days.ReplaceMonth(ctx, branchID, toYear, toMonth, days, status)
	if err != nil {
		return nil, fmt.Errorf("replace month %d-%02d: %w", toYear, toMonth, err)
	}

	s.cache.InvalidateBranch(branchID)

	s.logger.Info("Month copied from previous month pattern",
		zap.String("branch_id", branchID),
		zap.Int("from_year", fromYear),
		zap.Int("from_month", fromMonth),
		zap.Int("to_year", toYear),
		zap.Int("to_month", toMonth),
		zap.Int("best_week", pattern.bestWeek),
		zap.Int("saturdays", len(pattern.saturdays)),
		zap.Int("classes", classCount),
	)

	return &CopyResult{
		BestWeek:      pattern.bestWeek,
		SaturdayCount: len(pattern.saturdays),
		DaysWritten:   len(days),
		Message: fmt.Sprintf(
			"schedule for %d-%02d generated from %d-%02d: weekdays follow week %d pattern, %d saturday variants in rotation",
			toYear, toMonth, fromYear, fromMonth, pattern.bestWeek, len(pattern.saturdays)),
	}, nil
}
