package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// ScheduleCache инвалидация кэша дневных расписаний после записей
type ScheduleCache interface {
	Invalidate(branchID string, date time.Time)
	InvalidateBranch(branchID string)
}

// ScheduleService формирует месяцы расписания из недельного шаблона
// или из паттерна предыдущего месяца и обслуживает точечные правки
type ScheduleService struct {
	templates TemplateStore
	days      DailyScheduleStore
	statuses  MonthlyStatusStore
	cache     ScheduleCache
	logger    *zap.Logger
}

func NewScheduleService(
	templates TemplateStore,
	days DailyScheduleStore,
	statuses MonthlyStatusStore,
	cache ScheduleCache,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		templates: templates,
		days:      days,
		statuses:  statuses,
		cache:     cache,
		logger:    logger,
	}
}

// GenerateResult итог формирования месяца
type GenerateResult struct {
	DaysWritten int    `json:"days_written"`
	ClassCount  int    `json:"class_count"`
	Message     string `json:"message"`
}

// Generate формирует месяц расписания из недельного шаблона филиала.
// Перезапись идемпотентна: повторный вызов полностью заменяет месяц.
// Весь месяц пишется одной атомарной операцией вместе со статусом.
func (s *ScheduleService) Generate(ctx context.Context, branchID string, year, month int, createdBy string) (*GenerateResult, error) {
	tmpl, err := s.templates.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("get weekly template: %w", err)
	}

	if tmpl == nil {
		return nil, fmt.Errorf("%w: weekly template for branch %s", ErrNotFound, branchID)
	}

	for i := range tmpl.Entries {
		cls := tmpl.Entries[i].ClassInstance()
		if err := cls.Validate(); err != nil {
			return nil, fmt.Errorf("%w: template entry %d: %v", ErrValidation, i, err)
		}
	}

	byWeekday := tmpl.ByWeekday()

	days, classCount := buildMonth(branchID, year, month, func(date time.Time) []model.ClassInstance {
		return byWeekday[date.Weekday()]
	})

	status := &model.MonthlyStatus{
		BranchID:  branchID,
		Year:      year,
		Month:     month,
		IsSaved:   true,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}

	err = s.days.ReplaceMonth(ctx, branchID, year, month, days, status)
	if err != nil {
		return nil, fmt.Errorf("replace month %d-%02d: %w", year, month, err)
	}

	s.cache.InvalidateBranch(branchID)

	s.logger.Info("Month generated from weekly template",
		zap.String("branch_id", branchID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("days", len(days)),
		zap.Int("classes", classCount),
	)

	return &GenerateResult{
		DaysWritten: len(days),
		ClassCount:  classCount,
		Message:     fmt.Sprintf("schedule for %d-%02d generated from weekly template", year, month),
	}, nil
}

// buildMonth строит дневные расписания всех дней месяца. Занятия
// копируются с чистым статусом normal — статусы никогда не
// наследуются из источника.
func buildMonth(branchID string, year, month int, classesFor func(date time.Time) []model.ClassInstance) ([]*model.DailySchedule, int) {
	daysInMonth := model.DaysInMonth(year, month)
	days := make([]*model.DailySchedule, 0, daysInMonth)
	classCount := 0

	for d := 1; d <= daysInMonth; d++ {
		date := model.MonthDate(year, month, d)
		classes := cleanClasses(classesFor(date))
		classCount += len(classes)

		days = append(days, &model.DailySchedule{
			BranchID: branchID,
			Date:     date,
			Classes:  classes,
		})
	}

	return days, classCount
}

// cleanClasses копирует занятия со сбросом статуса в normal и
// подстановкой длительности по умолчанию
func cleanClasses(classes []model.ClassInstance) []model.ClassInstance {
	cleaned := make([]model.ClassInstance, 0, len(classes))
	for _, cls := range classes {
		cls.Status = model.ClassStatusNormal
		cls.Duration = cls.DurationOrDefault()
		cleaned = append(cleaned, cls)
	}
	return cleaned
}

// MonthStatus статус месяца для внешнего интерфейса
type MonthStatus struct {
	Exists  bool `json:"exists"`
	IsSaved bool `json:"is_saved"`
}

// GetMonthStatus сообщает, сформирован ли месяц. Если метазаписи нет,
// но дневные расписания существуют — месяц считается сформированным
// (данные, созданные до появления статусов).
func (s *ScheduleService) GetMonthStatus(ctx context.Context, branchID string, year, month int) (*MonthStatus, error) {
	status, err := s.statuses.Get(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("get monthly status: %w", err)
	}

	if status != nil {
		return &MonthStatus{Exists: true, IsSaved: status.IsSaved}, nil
	}

	days, err := s.days.GetMonth(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("get month schedules: %w", err)
	}

	if len(days) > 0 {
		return &MonthStatus{Exists: true, IsSaved: true}, nil
	}

	return &MonthStatus{Exists: false, IsSaved: false}, nil
}

// GetDay возвращает занятия филиала на дату; пустой список если дня нет
func (s *ScheduleService) GetDay(ctx context.Context, branchID string, date time.Time) ([]model.ClassInstance, error) {
	day, err := s.days.GetByDate(ctx, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	if day == nil {
		return []model.ClassInstance{}, nil
	}

	return day.Classes, nil
}

// SetDay полностью заменяет занятия филиала на дату
func (s *ScheduleService) SetDay(ctx context.Context, branchID string, date time.Time, classes []model.ClassInstance) error {
	if err := validateClasses(classes); err != nil {
		return err
	}

	day := &model.DailySchedule{
		BranchID: branchID,
		Date:     date,
		Classes:  classes,
	}

	err := s.days.UpsertDay(ctx, day)
	if err != nil {
		return fmt.Errorf("set day %s: %w", date.Format(model.DateLayout), err)
	}

	s.cache.Invalidate(branchID, date)

	s.logger.Info("Day schedule updated",
		zap.String("branch_id", branchID),
		zap.String("date", date.Format(model.DateLayout)),
		zap.Int("classes", len(classes)),
	)

	return nil
}

// SetWeekdayForMonth заменяет занятия всех дней указанного дня недели
// в месяце одной атомарной записью
func (s *ScheduleService) SetWeekdayForMonth(ctx context.Context, branchID string, year, month int, weekday time.Weekday, classes []model.ClassInstance) (int, error) {
	if err := validateClasses(classes); err != nil {
		return 0, err
	}

	daysInMonth := model.DaysInMonth(year, month)
	var days []*model.DailySchedule

	for d := 1; d <= daysInMonth; d++ {
		date := model.MonthDate(year, month, d)
		if date.Weekday() != weekday {
			continue
		}

		days = append(days, &model.DailySchedule{
			BranchID: branchID,
			Date:     date,
			Classes:  classes,
		})
	}

	err := s.days.UpsertDays(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("set weekday %s for %d-%02d: %w", weekday, year, month, err)
	}

	s.cache.InvalidateBranch(branchID)

	s.logger.Info("Weekday updated for month",
		zap.String("branch_id", branchID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("weekday", weekday.String()),
		zap.Int("days", len(days)),
	)

	return len(days), nil
}

// GetMonth возвращает занятия месяца, сгруппированные по датам
func (s *ScheduleService) GetMonth(ctx context.Context, branchID string, year, month int) (map[string][]model.ClassInstance, error) {
	days, err := s.days.GetMonth(ctx, branchID, year, month)
	if err != nil {
		return nil, fmt.Errorf("get month: %w", err)
	}

	result := make(map[string][]model.ClassInstance, len(days))
	for _, day := range days {
		result[day.DateString()] = day.Classes
	}

	return result, nil
}

// GetTemplate возвращает недельный шаблон филиала
func (s *ScheduleService) GetTemplate(ctx context.Context, branchID string) (*model.WeeklyTemplate, error) {
	tmpl, err := s.templates.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	if tmpl == nil {
		return nil, fmt.Errorf("%w: weekly template for branch %s", ErrNotFound, branchID)
	}

	return tmpl, nil
}

// ReplaceTemplate полностью заменяет недельный шаблон филиала
func (s *ScheduleService) ReplaceTemplate(ctx context.Context, tmpl *model.WeeklyTemplate) error {
	for i := range tmpl.Entries {
		cls := tmpl.Entries[i].ClassInstance()
		if err := cls.Validate(); err != nil {
			return fmt.Errorf("%w: template entry %d: %v", ErrValidation, i, err)
		}
	}

	err := s.templates.ReplaceForBranch(ctx, tmpl)
	if err != nil {
		return fmt.Errorf("replace template: %w", err)
	}

	s.logger.Info("Weekly template replaced",
		zap.String("branch_id", tmpl.BranchID),
		zap.Int("entries", len(tmpl.Entries)),
	)

	return nil
}

// validateClasses проверяет занятия на границе редактора
func validateClasses(classes []model.ClassInstance) error {
	for i := range classes {
		if err := classes[i].Validate(); err != nil {
			return fmt.Errorf("%w: class %d: %v", ErrValidation, i, err)
		}
	}
	return nil
}
