package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// Интерфейсы хранилищ, от которых зависят сервисы. Реализуются
// pgx-репозиториями; в тестах подменяются in-memory заглушками.
// Отсутствующая запись — (nil, nil), не ошибка.

// TemplateStore хранит недельные шаблоны филиалов
type TemplateStore interface {
	GetByBranch(ctx context.Context, branchID string) (*model.WeeklyTemplate, error)
	ReplaceForBranch(ctx context.Context, tmpl *model.WeeklyTemplate) error
}

// DailyScheduleStore хранит дневные расписания. ReplaceMonth и
// DeleteMonth атомарны и ведут также строку месячного статуса.
type DailyScheduleStore interface {
	GetByDate(ctx context.Context, branchID string, date time.Time) (*model.DailySchedule, error)
	GetMonth(ctx context.Context, branchID string, year, month int) ([]*model.DailySchedule, error)
	UpsertDay(ctx context.Context, day *model.DailySchedule) error
	UpsertDays(ctx context.Context, days []*model.DailySchedule) error
	ReplaceMonth(ctx context.Context, branchID string, year, month int, days []*model.DailySchedule, status *model.MonthlyStatus) error
	DeleteMonth(ctx context.Context, branchID string, year, month int) (int64, error)
}

// MonthlyStatusStore читает статусы месяцев
type MonthlyStatusStore interface {
	Get(ctx context.Context, branchID string, year, month int) (*model.MonthlyStatus, error)
}

// BackupStore хранит кольцо снапшотов месяца
type BackupStore interface {
	Create(ctx context.Context, snap *model.BackupSnapshot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.BackupSnapshot, error)
	ListByMonth(ctx context.Context, branchID string, year, month int) ([]*model.BackupSnapshot, error)
}
