// Package cache содержит read-through кэш дневных расписаний с TTL.
// Кэш стоит на «горячем» пути отметки посещения: матчер не должен
// работать с данными старше TTL, поэтому промах или истечение срока
// вызывают синхронную перезагрузку из хранилища.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// FetchFunc загружает занятия филиала на дату из хранилища
type FetchFunc func(ctx context.Context, branchID string, date time.Time) ([]model.ClassInstance, error)

type entry struct {
	classes   []model.ClassInstance
	fetchedAt time.Time
}

// DailyScheduleCache кэширует дневные расписания по ключу "branch_date".
// Часы инжектируются для тестируемости с фиктивным временем.
type DailyScheduleCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl    time.Duration
	now    func() time.Time
	fetch  FetchFunc
	logger *zap.Logger
}

// New создаёт кэш дневных расписаний
func New(ttl time.Duration, now func() time.Time, fetch FetchFunc, logger *zap.Logger) *DailyScheduleCache {
	return &DailyScheduleCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
		fetch:   fetch,
		logger:  logger,
	}
}

func cacheKey(branchID string, date time.Time) string {
	return branchID + "_" + date.Format(model.DateLayout)
}

// Get возвращает занятия филиала на дату. Свежая запись отдаётся из
// кэша; промах или истечение TTL вызывают синхронную перезагрузку
// с короткими ретраями на случай сетевой икоты хранилища.
func (c *DailyScheduleCache) Get(ctx context.Context, branchID string, date time.Time) ([]model.ClassInstance, error) {
	key := cacheKey(branchID, date)

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		return cached.classes, nil
	}

	var classes []model.ClassInstance
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := c.fetch(ctx, branchID, date)
		if err != nil {
			return retry.RetryableError(err)
		}
		classes = fetched
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to load daily schedule",
			zap.String("branch_id", branchID),
			zap.String("date", date.Format(model.DateLayout)),
			zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{classes: classes, fetchedAt: c.now()}
	c.mu.Unlock()

	return classes, nil
}

// Invalidate сбрасывает запись кэша для филиала и даты
func (c *DailyScheduleCache) Invalidate(branchID string, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey(branchID, date))
}

// InvalidateBranch сбрасывает все записи кэша филиала.
// Вызывается после массовых операций над месяцем.
func (c *DailyScheduleCache) InvalidateBranch(branchID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := branchID + "_"
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Refresh проактивно перечитывает записи за сегодня и выбрасывает
// записи прошедших дат. Вызывается фоновым таймером.
func (c *DailyScheduleCache) Refresh(ctx context.Context) {
	today := c.now().Format(model.DateLayout)
	suffix := "_" + today

	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	for _, key := range keys {
		if !strings.HasSuffix(key, suffix) {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
			continue
		}

		branchID := strings.TrimSuffix(key, suffix)
		date, err := time.Parse(model.DateLayout, today)
		if err != nil {
			continue
		}

		classes, err := c.fetch(ctx, branchID, date)
		if err != nil {
			// запись остаётся до истечения TTL, следующий Get перечитает
			c.logger.Warn("Failed to refresh daily schedule",
				zap.String("branch_id", branchID),
				zap.String("date", today),
				zap.Error(err))
			continue
		}

		c.mu.Lock()
		c.entries[key] = entry{classes: classes, fetchedAt: c.now()}
		c.mu.Unlock()
	}
}

// Len возвращает число записей в кэше
func (c *DailyScheduleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
