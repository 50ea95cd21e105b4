package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

type scheduleFixture struct {
	templates *mockTemplateStore
	daily     *mockDailyStore
	backups   *mockBackupStore
	cache     *mockCache
	service   *ScheduleService
}

func newScheduleFixture() *scheduleFixture {
	templates := newMockTemplateStore()
	daily := newMockDailyStore()
	cache := &mockCache{}
	return &scheduleFixture{
		templates: templates,
		daily:     daily,
		backups:   newMockBackupStore(),
		cache:     cache,
		service:   NewScheduleService(templates, daily, &mockStatusStore{daily: daily}, cache, zap.NewNop()),
	}
}

func weekdayTemplate(branchID string) *model.WeeklyTemplate {
	return &model.WeeklyTemplate{
		BranchID: branchID,
		Entries: []model.TemplateEntry{
			{Weekday: time.Monday, StartTime: "10:00", Title: "Beginner Ballet", Instructor: "Kim", Duration: 60},
			{Weekday: time.Monday, StartTime: "19:00", Title: "Evening Jazz", Instructor: "Lee", Duration: 90},
			{Weekday: time.Wednesday, StartTime: "18:00", Title: "Hip Hop", Instructor: "Park"},
		},
	}
}

func TestGenerate_FromWeeklyTemplate(t *testing.T) {
	f := newScheduleFixture()
	f.templates.templates["gangnam"] = weekdayTemplate("gangnam")

	// сентябрь 2025: 30 дней, 5 понедельников, 4 среды
	result, err := f.service.Generate(context.Background(), "gangnam", 2025, 9, "admin")
	require.NoError(t, err)

	assert.Equal(t, 30, result.DaysWritten)
	assert.Equal(t, 5*2+4*1, result.ClassCount)

	day, err := f.service.GetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 1))
	require.NoError(t, err)
	require.Len(t, day, 2, "September 1st 2025 is a Monday")
	assert.Equal(t, "Beginner Ballet", day[0].Title)
	assert.Equal(t, model.ClassStatusNormal, day[0].Status)

	// строка шаблона без длительности получает 60 минут
	wednesday, err := f.service.GetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 3))
	require.NoError(t, err)
	require.Len(t, wednesday, 1)
	assert.Equal(t, 60, wednesday[0].Duration)

	// пустые дни тоже записаны
	tuesday, err := f.daily.GetByDate(context.Background(), "gangnam", model.MonthDate(2025, 9, 2))
	require.NoError(t, err)
	require.NotNil(t, tuesday)
	assert.Empty(t, tuesday.Classes)

	status, err := f.service.GetMonthStatus(context.Background(), "gangnam", 2025, 9)
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.True(t, status.IsSaved)

	assert.Equal(t, []string{"gangnam"}, f.cache.branchInvalidated)
}

func TestGenerate_Idempotent(t *testing.T) {
	f := newScheduleFixture()
	f.templates.templates["gangnam"] = weekdayTemplate("gangnam")

	_, err := f.service.Generate(context.Background(), "gangnam", 2025, 9, "admin")
	require.NoError(t, err)

	// ручная правка дня, затем повторная генерация
	err = f.service.SetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 2), []model.ClassInstance{
		{Time: "12:00", Title: "Special Workshop", Status: model.ClassStatusNormal},
	})
	require.NoError(t, err)

	result, err := f.service.Generate(context.Background(), "gangnam", 2025, 9, "admin")
	require.NoError(t, err)
	assert.Equal(t, 30, result.DaysWritten)

	day, err := f.service.GetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 2))
	require.NoError(t, err)
	assert.Empty(t, day, "regeneration fully replaces manual edits")
}

func TestGenerate_MissingTemplate(t *testing.T) {
	f := newScheduleFixture()

	_, err := f.service.Generate(context.Background(), "nowhere", 2025, 9, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerate_InvalidTemplateEntry(t *testing.T) {
	f := newScheduleFixture()
	f.templates.templates["gangnam"] = &model.WeeklyTemplate{
		BranchID: "gangnam",
		Entries: []model.TemplateEntry{
			{Weekday: time.Monday, StartTime: "25:00", Title: "Broken"},
		},
	}

	_, err := f.service.Generate(context.Background(), "gangnam", 2025, 9, "admin")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerate_AtomicOnReplaceFailure(t *testing.T) {
	f := newScheduleFixture()
	f.templates.templates["gangnam"] = weekdayTemplate("gangnam")
	f.daily.replaceErr = errors.New("connection reset")

	_, err := f.service.Generate(context.Background(), "gangnam", 2025, 9, "admin")
	require.Error(t, err)

	days, err := f.daily.GetMonth(context.Background(), "gangnam", 2025, 9)
	require.NoError(t, err)
	assert.Empty(t, days, "failed replace leaves no partial days")

	status, err := f.service.GetMonthStatus(context.Background(), "gangnam", 2025, 9)
	require.NoError(t, err)
	assert.False(t, status.Exists)

	assert.Empty(t, f.cache.branchInvalidated, "cache untouched on failure")
}

func TestSetDay_Validation(t *testing.T) {
	f := newScheduleFixture()

	err := f.service.SetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 1), []model.ClassInstance{
		{Time: "10:00", Title: "", Status: model.ClassStatusNormal},
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = f.service.SetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 1), []model.ClassInstance{
		{Time: "10:00", Title: "Ballet", Status: "weird"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetDay_InvalidatesCacheEntry(t *testing.T) {
	f := newScheduleFixture()
	date := model.MonthDate(2025, 9, 1)

	err := f.service.SetDay(context.Background(), "gangnam", date, []model.ClassInstance{
		{Time: "10:00", Title: "Ballet", Status: model.ClassStatusNormal},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"gangnam_2025-09-01"}, f.cache.invalidated)
}

func TestSetWeekdayForMonth(t *testing.T) {
	f := newScheduleFixture()

	classes := []model.ClassInstance{
		{Time: "18:00", Title: "Hip Hop", Instructor: "Park", Duration: 60, Status: model.ClassStatusNormal},
	}
	count, err := f.service.SetWeekdayForMonth(context.Background(), "gangnam", 2025, 9, time.Wednesday, classes)
	require.NoError(t, err)
	assert.Equal(t, 4, count, "September 2025 has four Wednesdays")

	day, err := f.service.GetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 10))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "Hip Hop", day[0].Title)

	// другие дни не затронуты
	other, err := f.daily.GetByDate(context.Background(), "gangnam", model.MonthDate(2025, 9, 11))
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestGetMonthStatus_LegacyFallback(t *testing.T) {
	f := newScheduleFixture()

	// дни существуют без метазаписи статуса
	err := f.daily.UpsertDay(context.Background(), &model.DailySchedule{
		BranchID: "gangnam",
		Date:     model.MonthDate(2025, 9, 1),
		Classes:  []model.ClassInstance{{Time: "10:00", Title: "Ballet", Status: model.ClassStatusNormal}},
	})
	require.NoError(t, err)

	status, err := f.service.GetMonthStatus(context.Background(), "gangnam", 2025, 9)
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.True(t, status.IsSaved)
}

func TestGetDay_EmptyWhenMissing(t *testing.T) {
	f := newScheduleFixture()

	day, err := f.service.GetDay(context.Background(), "gangnam", model.MonthDate(2025, 9, 1))
	require.NoError(t, err)
	assert.NotNil(t, day)
	assert.Empty(t, day)
}

func TestReplaceTemplate_RejectsInvalidEntries(t *testing.T) {
	f := newScheduleFixture()

	err := f.service.ReplaceTemplate(context.Background(), &model.WeeklyTemplate{
		BranchID: "gangnam",
		Entries: []model.TemplateEntry{
			{Weekday: time.Monday, StartTime: "nope", Title: "Broken"},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.GetTemplate(context.Background(), "gangnam")
	assert.ErrorIs(t, err, ErrNotFound, "invalid template is not stored")
}
