package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// In-memory заглушки хранилищ для тестов сервисного слоя.
// Повторяют контракт pgx-репозиториев: отсутствующая запись (nil, nil),
// ReplaceMonth и DeleteMonth меняют дни и статус как одно целое.

type mockTemplateStore struct {
	templates map[string]*model.WeeklyTemplate
	getErr    error
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{templates: make(map[string]*model.WeeklyTemplate)}
}

func (m *mockTemplateStore) GetByBranch(_ context.Context, branchID string) (*model.WeeklyTemplate, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.templates[branchID], nil
}

func (m *mockTemplateStore) ReplaceForBranch(_ context.Context, tmpl *model.WeeklyTemplate) error {
	m.templates[tmpl.BranchID] = tmpl
	return nil
}

func monthKey(branchID string, year, month int) string {
	return fmt.Sprintf("%s_%d_%d", branchID, year, month)
}

type mockDailyStore struct {
	days     map[string]*model.DailySchedule // branchID + "_" + date
	statuses map[string]*model.MonthlyStatus // branchID + "_" + year + "_" + month

	replaceErr error
	upsertErr  error
	deleteErr  error
}

func newMockDailyStore() *mockDailyStore {
	return &mockDailyStore{
		days:     make(map[string]*model.DailySchedule),
		statuses: make(map[string]*model.MonthlyStatus),
	}
}

func (m *mockDailyStore) dayKey(branchID string, date time.Time) string {
	return branchID + "_" + date.Format(model.DateLayout)
}

func (m *mockDailyStore) GetByDate(_ context.Context, branchID string, date time.Time) (*model.DailySchedule, error) {
	return m.days[m.dayKey(branchID, date)], nil
}

func (m *mockDailyStore) GetMonth(_ context.Context, branchID string, year, month int) ([]*model.DailySchedule, error) {
	var result []*model.DailySchedule
	for _, day := range m.days {
		if day.BranchID == branchID && day.Date.Year() == year && int(day.Date.Month()) == month {
			result = append(result, day)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockDailyStore) UpsertDay(_ context.Context, day *model.DailySchedule) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.days[m.dayKey(day.BranchID, day.Date)] = day
	return nil
}

func (m *mockDailyStore) UpsertDays(ctx context.Context, days []*model.DailySchedule) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, day := range days {
		if err := m.UpsertDay(ctx, day); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockDailyStore) ReplaceMonth(_ context.Context, branchID string, year, month int, days []*model.DailySchedule, status *model.MonthlyStatus) error {
	if m.replaceErr != nil {
		// атомарность: при ошибке не остаётся частичных записей
		return m.replaceErr
	}
	for key, day := range m.days {
		if day.BranchID == branchID && day.Date.Year() == year && int(day.Date.Month()) == month {
			delete(m.days, key)
		}
	}
	for _, day := range days {
		m.days[m.dayKey(day.BranchID, day.Date)] = day
	}
	m.statuses[monthKey(branchID, year, month)] = status
	return nil
}

func (m *mockDailyStore) DeleteMonth(_ context.Context, branchID string, year, month int) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	var deleted int64
	for key, day := range m.days {
		if day.BranchID == branchID && day.Date.Year() == year && int(day.Date.Month()) == month {
			delete(m.days, key)
			deleted++
		}
	}
	delete(m.statuses, monthKey(branchID, year, month))
	return deleted, nil
}

// mockStatusStore читает статусы из того же состояния, что и mockDailyStore
type mockStatusStore struct {
	daily *mockDailyStore
}

func (m *mockStatusStore) Get(_ context.Context, branchID string, year, month int) (*model.MonthlyStatus, error) {
	return m.daily.statuses[monthKey(branchID, year, month)], nil
}

type mockBackupStore struct {
	snapshots map[uuid.UUID]*model.BackupSnapshot

	createErr error
	getErr    error
	// имитация проверочного чтения, вернувшего пустой снапшот
	verifyEmpty bool
}

func newMockBackupStore() *mockBackupStore {
	return &mockBackupStore{snapshots: make(map[uuid.UUID]*model.BackupSnapshot)}
}

func (m *mockBackupStore) Create(_ context.Context, snap *model.BackupSnapshot) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.snapshots[snap.ID] = snap

	// кольцо глубины BackupRingDepth на месяц, как в репозитории
	var ring []*model.BackupSnapshot
	for _, s := range m.snapshots {
		if s.BranchID == snap.BranchID && s.Year == snap.Year && s.Month == snap.Month {
			ring = append(ring, s)
		}
	}
	sort.Slice(ring, func(i, j int) bool {
		return ring[i].CreatedAt.After(ring[j].CreatedAt)
	})
	for i := model.BackupRingDepth; i < len(ring); i++ {
		delete(m.snapshots, ring[i].ID)
	}
	return nil
}

func (m *mockBackupStore) GetByID(_ context.Context, id uuid.UUID) (*model.BackupSnapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.verifyEmpty {
		return nil, nil
	}
	return m.snapshots[id], nil
}

func (m *mockBackupStore) ListByMonth(_ context.Context, branchID string, year, month int) ([]*model.BackupSnapshot, error) {
	var result []*model.BackupSnapshot
	for _, s := range m.snapshots {
		if s.BranchID == branchID && s.Year == year && s.Month == month {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type mockCache struct {
	invalidated       []string
	branchInvalidated []string
}

func (m *mockCache) Invalidate(branchID string, date time.Time) {
	m.invalidated = append(m.invalidated, branchID+"_"+date.Format(model.DateLayout))
}

func (m *mockCache) InvalidateBranch(branchID string) {
	m.branchInvalidated = append(m.branchInvalidated, branchID)
}
