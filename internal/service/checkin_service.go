package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
	"github.com/haneulsoft/studio-scheduler/internal/schedule"
)

// DailyClassSource источник занятий на дату для матчера; реализуется
// TTL-кэшем, который при промахе синхронно перечитывает хранилище
type DailyClassSource interface {
	Get(ctx context.Context, branchID string, date time.Time) ([]model.ClassInstance, error)
}

// CheckinService сопоставляет момент отметки посещения с занятием.
// Часы инжектируются: «сегодня» определяется локальным временем
// филиала, минуты момента поставляет вызывающая сторона.
type CheckinService struct {
	classes DailyClassSource
	now     func() time.Time
	logger  *zap.Logger
}

func NewCheckinService(classes DailyClassSource, now func() time.Time, logger *zap.Logger) *CheckinService {
	return &CheckinService{
		classes: classes,
		now:     now,
		logger:  logger,
	}
}

// NowMinutes возвращает текущие минуты от полуночи по часам сервиса
func (s *CheckinService) NowMinutes() int {
	now := s.now()
	return now.Hour()*60 + now.Minute()
}

// MatchClass выбирает занятие, которому принадлежит момент nowMinutes
// (минуты от полуночи локального времени филиала). Отсутствие
// совпадения — валидный результат: посещение записывается как
// самостоятельная практика. Читает только кэш дневного расписания,
// побочных эффектов не имеет.
func (s *CheckinService) MatchClass(ctx context.Context, branchID string, nowMinutes int, instructor string) (*schedule.Match, error) {
	if nowMinutes < 0 || nowMinutes >= 24*60 {
		return nil, fmt.Errorf("%w: minutes %d out of range", ErrValidation, nowMinutes)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	classes, err := s.classes.Get(ctx, branchID, today)
	if err != nil {
		return nil, fmt.Errorf("load today schedule: %w", err)
	}

	match := schedule.MatchClass(classes, nowMinutes, instructor)

	if match == nil {
		s.logger.Debug("No class matched for check-in",
			zap.String("branch_id", branchID),
			zap.Int("minutes", nowMinutes),
			zap.String("instructor", instructor))
		return nil, nil
	}

	s.logger.Debug("Class matched for check-in",
		zap.String("branch_id", branchID),
		zap.Int("minutes", nowMinutes),
		zap.String("title", match.Class.Title),
		zap.String("time", match.Class.Time),
		zap.String("reason", string(match.Reason)))

	return match, nil
}
